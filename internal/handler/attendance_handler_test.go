package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/calendar"
	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/export"
)

type attendanceServiceMock struct {
	saved       *dto.SaveSheetRequest
	sheetDate   string
	sheetCourse *string
	person      string
	month       string
	format      string
	hit         bool
	err         error
}

func (m *attendanceServiceMock) SaveSheet(_ context.Context, _ models.Actor, req dto.SaveSheetRequest) (*dto.SheetResponse, error) {
	m.saved = &req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.SheetResponse{BranchID: "branch-1", Date: req.Date, IsSaved: true}, nil
}

func (m *attendanceServiceMock) GetSheet(_ context.Context, _ models.Actor, _ string, courseID *string, date string) (*dto.SheetResponse, error) {
	m.sheetDate = date
	m.sheetCourse = courseID
	return &dto.SheetResponse{Date: date}, m.err
}

func (m *attendanceServiceMock) ListForPerson(_ context.Context, _ models.Actor, personID string, _ dto.AttendanceQuery) ([]models.AttendanceRecord, error) {
	m.person = personID
	return nil, m.err
}

func (m *attendanceServiceMock) Calendar(_ context.Context, _ models.Actor, personID, month string) (calendar.MonthView, bool, error) {
	m.person = personID
	m.month = month
	return calendar.MonthView{Month: month}, m.hit, m.err
}

func (m *attendanceServiceMock) ExportCalendar(_ context.Context, _ models.Actor, personID, month, format string) ([]byte, export.Format, string, error) {
	m.person = personID
	m.month = month
	m.format = format
	return []byte("date,weekday,status\n"), export.FormatCSV, "attendance-" + personID + "-" + month + ".csv", m.err
}

func TestAttendanceSaveSheet(t *testing.T) {
	svc := &attendanceServiceMock{}
	handler := NewAttendanceHandler(svc)
	body := []byte(`{"courseId":"course-1","date":"2024-04-11","records":[{"personId":"student-1","status":"ABSENT"}]}`)
	c, w := newGinContext(http.MethodPost, "/attendance/sheets", body)
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.SaveSheet(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.saved)
	require.NotNil(t, svc.saved.CourseID)
	assert.Equal(t, "course-1", *svc.saved.CourseID)
	require.Len(t, svc.saved.Records, 1)
	assert.Equal(t, "ABSENT", svc.saved.Records[0].Status)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env.Data["isSaved"])
}

func TestAttendanceSaveSheetLocked(t *testing.T) {
	handler := NewAttendanceHandler(&attendanceServiceMock{err: appErrors.ErrLocked})
	body := []byte(`{"date":"2024-04-11","records":[{"personId":"staff-1","status":"PRESENT"}]}`)
	c, w := newGinContext(http.MethodPost, "/attendance/sheets", body)
	withClaims(c, "registrar-1", models.RoleRegistrar, "branch-1")

	handler.SaveSheet(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrLocked.Code, env.Error.Code)
}

func TestAttendanceGetSheetRequiresDate(t *testing.T) {
	svc := &attendanceServiceMock{}
	handler := NewAttendanceHandler(svc)
	c, w := newGinContext(http.MethodGet, "/attendance/sheets?courseId=course-1", nil)
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.GetSheet(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodGet, "/attendance/sheets?date=2024-04-11", nil)
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.GetSheet(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-04-11", svc.sheetDate)
	assert.Nil(t, svc.sheetCourse)
}

func TestAttendanceCalendarDefaultsToCurrentMonth(t *testing.T) {
	svc := &attendanceServiceMock{hit: true}
	handler := NewAttendanceHandler(svc)
	c, w := newGinContext(http.MethodGet, "/people/student-1/calendar", nil)
	c.Params = gin.Params{{Key: "id", Value: "student-1"}}
	withClaims(c, "student-1", models.RoleStudent, "branch-1")

	handler.Calendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, calendar.MonthOf(time.Now()).String(), svc.month)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
}

func TestAttendanceExportCalendar(t *testing.T) {
	svc := &attendanceServiceMock{}
	handler := NewAttendanceHandler(svc)
	c, w := newGinContext(http.MethodGet, "/people/student-1/calendar/export?month=2024-02&format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "student-1"}}
	withClaims(c, "admin-1", models.RoleAdmin, "branch-1")

	handler.ExportCalendar(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.format)
	assert.Equal(t, "2024-02", svc.month)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-student-1-2024-02.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "date,weekday,status\n", w.Body.String())
}
