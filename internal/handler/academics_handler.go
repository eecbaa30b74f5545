package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/service"
	"github.com/noah-isme/verticx-api/pkg/response"
)

// SyllabusHandler exposes syllabus lecture endpoints.
type SyllabusHandler struct {
	entityChanges
	lectures *service.SyllabusService
}

// NewSyllabusHandler constructs SyllabusHandler.
func NewSyllabusHandler(lectures *service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{entityChanges: entityChanges{requester: lectures}, lectures: lectures}
}

// List godoc
// @Summary List lectures of a course
// @Tags Syllabus
// @Produce json
// @Security BearerAuth
// @Param courseId query string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /syllabus/lectures [get]
func (h *SyllabusHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	lectures, err := h.lectures.ListByCourse(c.Request.Context(), actor, c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lectures)
}

// Get godoc
// @Summary Get lecture
// @Tags Syllabus
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Success 200 {object} response.Envelope
// @Router /syllabus/lectures/{id} [get]
func (h *SyllabusHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	lecture, err := h.lectures.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lecture)
}

// Create godoc
// @Summary Create draft lecture
// @Tags Syllabus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SyllabusLectureRequest true "Lecture"
// @Success 201 {object} response.Envelope
// @Router /syllabus/lectures [post]
func (h *SyllabusHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.SyllabusLectureRequest
	if !bindJSON(c, &req, "invalid lecture") {
		return
	}
	lecture, err := h.lectures.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecture)
}

// Update godoc
// @Summary Update draft lecture
// @Tags Syllabus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Param payload body dto.SyllabusLectureRequest true "Lecture"
// @Success 200 {object} response.Envelope
// @Router /syllabus/lectures/{id} [put]
func (h *SyllabusHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.SyllabusLectureRequest
	if !bindJSON(c, &req, "invalid lecture") {
		return
	}
	lecture, err := h.lectures.UpdateDraft(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lecture)
}

// Delete godoc
// @Summary Delete draft lecture
// @Tags Syllabus
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Success 204
// @Router /syllabus/lectures/{id} [delete]
func (h *SyllabusHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.lectures.DeleteDraft(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Commit godoc
// @Summary Commit lecture
// @Tags Syllabus
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Success 200 {object} response.Envelope
// @Router /syllabus/lectures/{id}/commit [post]
func (h *SyllabusHandler) Commit(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	lecture, err := h.lectures.Commit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lecture)
}

// ExamMarkHandler exposes exam mark endpoints.
type ExamMarkHandler struct {
	entityChanges
	marks *service.ExamMarkService
}

// NewExamMarkHandler constructs ExamMarkHandler.
func NewExamMarkHandler(marks *service.ExamMarkService) *ExamMarkHandler {
	return &ExamMarkHandler{entityChanges: entityChanges{requester: marks}, marks: marks}
}

// List godoc
// @Summary List marks of an exam
// @Tags Exam Marks
// @Produce json
// @Security BearerAuth
// @Param examId query string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /exam-marks [get]
func (h *ExamMarkHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	marks, err := h.marks.ListByExam(c.Request.Context(), actor, c.Query("examId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, marks)
}

// Get godoc
// @Summary Get exam mark
// @Tags Exam Marks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mark ID"
// @Success 200 {object} response.Envelope
// @Router /exam-marks/{id} [get]
func (h *ExamMarkHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	mark, err := h.marks.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mark)
}

// Create godoc
// @Summary Enter a draft mark
// @Tags Exam Marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExamMarkRequest true "Mark"
// @Success 201 {object} response.Envelope
// @Router /exam-marks [post]
func (h *ExamMarkHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ExamMarkRequest
	if !bindJSON(c, &req, "invalid exam mark") {
		return
	}
	mark, err := h.marks.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mark)
}

// Update godoc
// @Summary Update draft mark
// @Tags Exam Marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mark ID"
// @Param payload body dto.ExamMarkRequest true "Mark"
// @Success 200 {object} response.Envelope
// @Router /exam-marks/{id} [put]
func (h *ExamMarkHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ExamMarkRequest
	if !bindJSON(c, &req, "invalid exam mark") {
		return
	}
	mark, err := h.marks.UpdateDraft(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mark)
}

// Delete godoc
// @Summary Delete draft mark
// @Tags Exam Marks
// @Security BearerAuth
// @Param id path string true "Mark ID"
// @Success 204
// @Router /exam-marks/{id} [delete]
func (h *ExamMarkHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.marks.DeleteDraft(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CommitExam godoc
// @Summary Commit every draft mark of an exam
// @Tags Exam Marks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /exams/{id}/commit [post]
func (h *ExamMarkHandler) CommitExam(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	result, err := h.marks.CommitExam(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
