package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/calendar"
	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/export"
	"github.com/noah-isme/verticx-api/pkg/response"
)

type attendanceService interface {
	SaveSheet(ctx context.Context, actor models.Actor, req dto.SaveSheetRequest) (*dto.SheetResponse, error)
	GetSheet(ctx context.Context, actor models.Actor, branchID string, courseID *string, date string) (*dto.SheetResponse, error)
	ListForPerson(ctx context.Context, actor models.Actor, personID string, query dto.AttendanceQuery) ([]models.AttendanceRecord, error)
	Calendar(ctx context.Context, actor models.Actor, personID, month string) (calendar.MonthView, bool, error)
	ExportCalendar(ctx context.Context, actor models.Actor, personID, month, format string) ([]byte, export.Format, string, error)
}

// AttendanceHandler exposes attendance sheets and calendars.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// SaveSheet godoc
// @Summary Save an attendance sheet
// @Description Saves every record of a course (or staff) sheet for one date. A saved sheet is locked.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveSheetRequest true "Sheet"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/sheets [post]
func (h *AttendanceHandler) SaveSheet(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.SaveSheetRequest
	if !bindJSON(c, &req, "invalid attendance sheet") {
		return
	}
	sheet, err := h.service.SaveSheet(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sheet)
}

// GetSheet godoc
// @Summary Get an attendance sheet
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param courseId query string false "Course ID, omitted for staff sheets"
// @Param branchId query string false "Branch ID (superadmin only)"
// @Success 200 {object} response.Envelope
// @Router /attendance/sheets [get]
func (h *AttendanceHandler) GetSheet(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	var courseID *string
	if v := strings.TrimSpace(c.Query("courseId")); v != "" {
		courseID = &v
	}
	sheet, err := h.service.GetSheet(c.Request.Context(), actor, c.Query("branchId"), courseID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sheet)
}

// ListForPerson godoc
// @Summary List a person's attendance records
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /people/{id}/attendance [get]
func (h *AttendanceHandler) ListForPerson(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var query dto.AttendanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	records, err := h.service.ListForPerson(c.Request.Context(), actor, c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Calendar godoc
// @Summary Attendance calendar of a month
// @Description One status per day; approved leave wins over any record.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /people/{id}/calendar [get]
func (h *AttendanceHandler) Calendar(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	start := time.Now()
	view, cacheHit, err := h.service.Calendar(c.Request.Context(), actor, c.Param("id"), monthParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, view, cacheHit, start)
}

// ExportCalendar godoc
// @Summary Download a month calendar
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param month query string false "Month (YYYY-MM)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /people/{id}/calendar/export [get]
func (h *AttendanceHandler) ExportCalendar(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	data, format, filename, err := h.service.ExportCalendar(c.Request.Context(), actor, c.Param("id"), monthParam(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, format.ContentType(), filename, data)
}

func monthParam(c *gin.Context) string {
	if m := strings.TrimSpace(c.Query("month")); m != "" {
		return m
	}
	return calendar.MonthOf(time.Now()).String()
}
