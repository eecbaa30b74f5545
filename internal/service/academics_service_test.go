package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type memExamMarks struct {
	items map[string]models.ExamMark
	seq   int
}

func newMemExamMarks() *memExamMarks {
	return &memExamMarks{items: map[string]models.ExamMark{}}
}

func (m *memExamMarks) Create(ctx context.Context, mark *models.ExamMark) error {
	for _, existing := range m.items {
		if existing.ExamID == mark.ExamID && existing.StudentID == mark.StudentID {
			return repository.ErrAlreadyExists
		}
	}
	m.seq++
	mark.ID = fmt.Sprintf("mark-%d", m.seq)
	m.items[mark.ID] = *mark
	return nil
}

func (m *memExamMarks) GetByID(ctx context.Context, id string) (*models.ExamMark, error) {
	mark, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &mark, nil
}

func (m *memExamMarks) ListByExam(ctx context.Context, examID string) ([]models.ExamMark, error) {
	var out []models.ExamMark
	for i := 1; i <= m.seq; i++ {
		if mark, ok := m.items[fmt.Sprintf("mark-%d", i)]; ok && mark.ExamID == examID {
			out = append(out, mark)
		}
	}
	return out, nil
}

func (m *memExamMarks) Update(ctx context.Context, mark *models.ExamMark, expected models.Lifecycle) error {
	cur, ok := m.items[mark.ID]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	m.items[mark.ID] = *mark
	return nil
}

func (m *memExamMarks) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	cur, ok := m.items[id]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memExamMarks) CommitExam(ctx context.Context, examID string) (int64, error) {
	var n int64
	for id, mark := range m.items {
		if mark.ExamID == examID && mark.Lifecycle == models.LifecycleDraft {
			mark.Lifecycle = models.LifecycleCommitted
			m.items[id] = mark
			n++
		}
	}
	return n, nil
}

type memSyllabus struct {
	items map[string]models.SyllabusLecture
	seq   int
}

func newMemSyllabus() *memSyllabus {
	return &memSyllabus{items: map[string]models.SyllabusLecture{}}
}

func (m *memSyllabus) Create(ctx context.Context, lecture *models.SyllabusLecture) error {
	m.seq++
	lecture.ID = fmt.Sprintf("lecture-%d", m.seq)
	m.items[lecture.ID] = *lecture
	return nil
}

func (m *memSyllabus) GetByID(ctx context.Context, id string) (*models.SyllabusLecture, error) {
	lecture, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &lecture, nil
}

func (m *memSyllabus) ListByCourse(ctx context.Context, courseID string) ([]models.SyllabusLecture, error) {
	var out []models.SyllabusLecture
	for i := 1; i <= m.seq; i++ {
		if l, ok := m.items[fmt.Sprintf("lecture-%d", i)]; ok && l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memSyllabus) Update(ctx context.Context, lecture *models.SyllabusLecture, expected models.Lifecycle) error {
	cur, ok := m.items[lecture.ID]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	m.items[lecture.ID] = *lecture
	return nil
}

func (m *memSyllabus) Delete(ctx context.Context, id string, expected models.Lifecycle) error {
	cur, ok := m.items[id]
	if !ok || cur.Lifecycle != expected {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memSyllabus) Commit(ctx context.Context, id string) error {
	cur, ok := m.items[id]
	if !ok || cur.Lifecycle != models.LifecycleDraft {
		return sql.ErrNoRows
	}
	cur.Lifecycle = models.LifecycleCommitted
	m.items[id] = cur
	return nil
}

func markRequest(studentID string, score float64) dto.ExamMarkRequest {
	return dto.ExamMarkRequest{ExamID: "exam-1", CourseID: "course-1", StudentID: studentID, Score: score, MaxScore: 100}
}

func TestExamMarkDraftsAndCommit(t *testing.T) {
	repo := newMemExamMarks()
	audit := &recordingAudit{}
	svc := NewExamMarkService(repo, nil, audit, nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, teacher(), markRequest("student-1", 78))
	require.NoError(t, err)
	assert.Equal(t, models.LifecycleDraft, first.Lifecycle)
	assert.Equal(t, "teacher-1", first.EnteredBy)

	_, err = svc.Create(ctx, teacher(), markRequest("student-1", 80))
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.Create(ctx, teacher(), markRequest("student-2", 120))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	second, err := svc.Create(ctx, teacher(), markRequest("student-2", 64))
	require.NoError(t, err)

	updated, err := svc.UpdateDraft(ctx, teacher(), second.ID, markRequest("student-2", 66))
	require.NoError(t, err)
	assert.Equal(t, 66.0, updated.Score)

	result, err := svc.CommitExam(ctx, teacher(), "exam-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Committed)

	_, err = svc.UpdateDraft(ctx, teacher(), first.ID, markRequest("student-1", 90))
	assert.True(t, errors.Is(err, appErrors.ErrLocked))
	err = svc.DeleteDraft(ctx, teacher(), first.ID)
	assert.True(t, errors.Is(err, appErrors.ErrLocked))

	_, err = svc.CommitExam(ctx, teacher(), "exam-404")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	assert.Equal(t, []string{
		models.AuditActionEntityCreate,
		models.AuditActionEntityCreate,
		models.AuditActionEntityUpdate,
		models.AuditActionEntityCommit,
	}, audit.actions())
}

func TestExamMarkListRejectsForeignBranch(t *testing.T) {
	repo := newMemExamMarks()
	svc := NewExamMarkService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), teacher(), markRequest("student-1", 50))
	require.NoError(t, err)

	marks, err := svc.ListByExam(context.Background(), principal(), "exam-1")
	require.NoError(t, err)
	assert.Len(t, marks, 1)

	outsider := principal()
	outsider.BranchID = "branch-2"
	_, err = svc.ListByExam(context.Background(), outsider, "exam-1")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.ListByExam(context.Background(), principal(), " ")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, validateScore(0, 10))
	assert.NoError(t, validateScore(10, 10))
	assert.Error(t, validateScore(-1, 10))
	assert.Error(t, validateScore(11, 10))
	assert.Error(t, validateScore(5, 0))
}

func lectureRequest(title string) dto.SyllabusLectureRequest {
	return dto.SyllabusLectureRequest{CourseID: "course-1", Title: title, Topics: "fractions", ScheduledDate: "2024-05-02"}
}

func TestSyllabusLectureLifecycle(t *testing.T) {
	repo := newMemSyllabus()
	submitter := &recordingSubmitter{}
	svc := NewSyllabusService(repo, submitter, nil, nil, nil)
	ctx := context.Background()

	lecture, err := svc.Create(ctx, teacher(), lectureRequest(" Fractions I "))
	require.NoError(t, err)
	assert.Equal(t, "Fractions I", lecture.Title)
	assert.Equal(t, "teacher-1", lecture.TeacherID)
	assert.Equal(t, models.LifecycleDraft, lecture.Lifecycle)

	_, err = svc.Create(ctx, teacher(), dto.SyllabusLectureRequest{CourseID: "course-1", Title: "x", ScheduledDate: "May 2"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	edited, err := svc.UpdateDraft(ctx, teacher(), lecture.ID, lectureRequest("Fractions II"))
	require.NoError(t, err)
	assert.Equal(t, "Fractions II", edited.Title)

	_, err = svc.Commit(ctx, teacher(), lecture.ID)
	require.NoError(t, err)
	_, err = svc.Commit(ctx, teacher(), lecture.ID)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.UpdateDraft(ctx, teacher(), lecture.ID, lectureRequest("Fractions III"))
	assert.True(t, errors.Is(err, appErrors.ErrLocked))

	_, err = svc.RequestUpdate(ctx, teacher(), lecture.ID, "", dto.EntityUpdateRequest{NewData: []byte(`{"title":"Fractions III"}`), Reason: "renamed"})
	require.NoError(t, err)
	require.Len(t, submitter.requests, 1)
	assert.Equal(t, string(models.EntitySyllabusLecture), submitter.requests[0].EntityType)
}

func TestSyllabusListHidesOtherBranches(t *testing.T) {
	repo := newMemSyllabus()
	svc := NewSyllabusService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), teacher(), lectureRequest("Local"))
	require.NoError(t, err)
	foreign := teacher()
	foreign.BranchID = "branch-2"
	_, err = svc.Create(context.Background(), foreign, lectureRequest("Foreign"))
	require.NoError(t, err)

	lectures, err := svc.ListByCourse(context.Background(), teacher(), "course-1")
	require.NoError(t, err)
	require.Len(t, lectures, 1)
	assert.Equal(t, "Local", lectures[0].Title)
}
