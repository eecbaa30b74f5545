package service

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

// TargetSnapshot is what the change-request workflow needs to know about
// the record a request points at.
type TargetSnapshot struct {
	BranchID  string
	PersonID  string
	Committed bool
	Data      []byte
}

// ChangeTarget adapts one entity type to the change-request workflow.
// Preview returns the record as ApplyUpdate would store it, serialized like
// Snapshot. ApplyUpdate and Delete run inside the review transaction.
type ChangeTarget interface {
	Snapshot(ctx context.Context, id string) (*TargetSnapshot, error)
	Preview(ctx context.Context, id string, newData []byte) ([]byte, error)
	ApplyUpdate(ctx context.Context, id string, newData []byte) error
	Delete(ctx context.Context, id string) error
}

// mergeProposal replaces the editable top-level fields named in proposal and
// keeps every other field of current. Any other key must repeat the current
// value; a proposal that tries to change it is rejected field by field.
func mergeProposal[T any](current T, proposal []byte, editable ...string) (T, error) {
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(proposal, &patch); err != nil {
		return current, validationError(err, "proposed data must be a JSON object")
	}
	base, err := json.Marshal(current)
	if err != nil {
		return current, internalError(err, "failed to snapshot target")
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return current, internalError(err, "failed to snapshot target")
	}

	allowed := make(map[string]bool, len(editable))
	for _, key := range editable {
		allowed[key] = true
	}
	readOnly := map[string]string{}
	for key, value := range patch {
		if allowed[key] {
			fields[key] = value
			continue
		}
		if existing, ok := fields[key]; ok && sameJSON(existing, value) {
			continue
		}
		readOnly[key] = "read_only"
	}
	if len(readOnly) > 0 {
		return current, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "only "+strings.Join(editable, ", ")+" can be changed"),
			readOnly,
		)
	}

	combined, err := json.Marshal(fields)
	if err != nil {
		return current, internalError(err, "failed to merge proposal")
	}
	var merged T
	if err := json.Unmarshal(combined, &merged); err != nil {
		return current, validationError(err, "proposed data does not match the target")
	}
	return merged, nil
}

func sameJSON(a, b json.RawMessage) bool {
	var left, right interface{}
	if json.Unmarshal(a, &left) != nil || json.Unmarshal(b, &right) != nil {
		return false
	}
	return reflect.DeepEqual(left, right)
}

func snapshotOf(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, internalError(err, "failed to snapshot target")
	}
	return data, nil
}

type feeTemplateTargetRepo interface {
	GetByID(ctx context.Context, id string) (*models.FeeTemplate, error)
	Update(ctx context.Context, tpl *models.FeeTemplate, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
}

// FeeTemplateTarget applies change requests to fee templates.
type FeeTemplateTarget struct {
	repo feeTemplateTargetRepo
}

// NewFeeTemplateTarget constructs the adapter.
func NewFeeTemplateTarget(repo feeTemplateTargetRepo) *FeeTemplateTarget {
	return &FeeTemplateTarget{repo: repo}
}

func (t *FeeTemplateTarget) Snapshot(ctx context.Context, id string) (*TargetSnapshot, error) {
	tpl, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := snapshotOf(tpl)
	if err != nil {
		return nil, err
	}
	return &TargetSnapshot{BranchID: tpl.BranchID, Committed: tpl.Lifecycle == models.LifecycleCommitted, Data: data}, nil
}

// merge accepts name, grade level and breakdown; amount stays derived.
func (t *FeeTemplateTarget) merge(ctx context.Context, id string, newData []byte) (*models.FeeTemplate, error) {
	current, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergeProposal(*current, newData, "name", "gradeLevel", "monthlyBreakdown")
	if err != nil {
		return nil, err
	}
	merged.Name = strings.TrimSpace(merged.Name)
	normalizeBreakdown(merged.MonthlyBreakdown)
	if merged.GradeLevel < 0 || merged.GradeLevel > 12 {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "gradeLevel must be between 0 and 12"),
			map[string]string{"gradeLevel": "max"},
		)
	}
	if err := validateFeeTemplate(merged.Name, merged.MonthlyBreakdown); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (t *FeeTemplateTarget) Preview(ctx context.Context, id string, newData []byte) ([]byte, error) {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return nil, err
	}
	return snapshotOf(merged)
}

func (t *FeeTemplateTarget) ApplyUpdate(ctx context.Context, id string, newData []byte) error {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return err
	}
	return t.repo.Update(ctx, merged, models.LifecycleCommitted)
}

func (t *FeeTemplateTarget) Delete(ctx context.Context, id string) error {
	return t.repo.Delete(ctx, id, models.LifecycleCommitted)
}

type syllabusTargetRepo interface {
	GetByID(ctx context.Context, id string) (*models.SyllabusLecture, error)
	Update(ctx context.Context, lecture *models.SyllabusLecture, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
}

// SyllabusTarget applies change requests to syllabus lectures.
type SyllabusTarget struct {
	repo syllabusTargetRepo
}

// NewSyllabusTarget constructs the adapter.
func NewSyllabusTarget(repo syllabusTargetRepo) *SyllabusTarget {
	return &SyllabusTarget{repo: repo}
}

func (t *SyllabusTarget) Snapshot(ctx context.Context, id string) (*TargetSnapshot, error) {
	lecture, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := snapshotOf(lecture)
	if err != nil {
		return nil, err
	}
	return &TargetSnapshot{BranchID: lecture.BranchID, Committed: lecture.Lifecycle == models.LifecycleCommitted, Data: data}, nil
}

func (t *SyllabusTarget) merge(ctx context.Context, id string, newData []byte) (*models.SyllabusLecture, error) {
	current, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergeProposal(*current, newData, "courseId", "title", "topics", "scheduledDate")
	if err != nil {
		return nil, err
	}
	merged.CourseID = strings.TrimSpace(merged.CourseID)
	merged.Title = strings.TrimSpace(merged.Title)
	merged.Topics = strings.TrimSpace(merged.Topics)
	if err := validateLecture(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (t *SyllabusTarget) Preview(ctx context.Context, id string, newData []byte) ([]byte, error) {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return nil, err
	}
	return snapshotOf(merged)
}

func (t *SyllabusTarget) ApplyUpdate(ctx context.Context, id string, newData []byte) error {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return err
	}
	return t.repo.Update(ctx, merged, models.LifecycleCommitted)
}

func (t *SyllabusTarget) Delete(ctx context.Context, id string) error {
	return t.repo.Delete(ctx, id, models.LifecycleCommitted)
}

type examMarkTargetRepo interface {
	GetByID(ctx context.Context, id string) (*models.ExamMark, error)
	Update(ctx context.Context, mark *models.ExamMark, expected models.Lifecycle) error
	Delete(ctx context.Context, id string, expected models.Lifecycle) error
}

// ExamMarkTarget applies change requests to exam marks.
type ExamMarkTarget struct {
	repo examMarkTargetRepo
}

// NewExamMarkTarget constructs the adapter.
func NewExamMarkTarget(repo examMarkTargetRepo) *ExamMarkTarget {
	return &ExamMarkTarget{repo: repo}
}

func (t *ExamMarkTarget) Snapshot(ctx context.Context, id string) (*TargetSnapshot, error) {
	mark, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := snapshotOf(mark)
	if err != nil {
		return nil, err
	}
	return &TargetSnapshot{BranchID: mark.BranchID, PersonID: mark.StudentID, Committed: mark.Lifecycle == models.LifecycleCommitted, Data: data}, nil
}

// merge only touches the score pair; the exam, course and student identify the mark.
func (t *ExamMarkTarget) merge(ctx context.Context, id string, newData []byte) (*models.ExamMark, error) {
	current, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergeProposal(*current, newData, "score", "maxScore")
	if err != nil {
		return nil, err
	}
	if err := validateScore(merged.Score, merged.MaxScore); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (t *ExamMarkTarget) Preview(ctx context.Context, id string, newData []byte) ([]byte, error) {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return nil, err
	}
	return snapshotOf(merged)
}

func (t *ExamMarkTarget) ApplyUpdate(ctx context.Context, id string, newData []byte) error {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return err
	}
	return t.repo.Update(ctx, merged, models.LifecycleCommitted)
}

func (t *ExamMarkTarget) Delete(ctx context.Context, id string) error {
	return t.repo.Delete(ctx, id, models.LifecycleCommitted)
}

type attendanceTargetRepo interface {
	GetRecord(ctx context.Context, id string) (*models.AttendanceRecord, error)
	UpdateRecordStatus(ctx context.Context, id string, status models.AttendanceStatus) error
	DeleteRecord(ctx context.Context, id string) error
}

// AttendanceTarget applies change requests to saved attendance records.
// Records only exist under a saved sheet, so they are always committed.
type AttendanceTarget struct {
	repo attendanceTargetRepo
}

// NewAttendanceTarget constructs the adapter.
func NewAttendanceTarget(repo attendanceTargetRepo) *AttendanceTarget {
	return &AttendanceTarget{repo: repo}
}

func (t *AttendanceTarget) Snapshot(ctx context.Context, id string) (*TargetSnapshot, error) {
	record, err := t.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := snapshotOf(record)
	if err != nil {
		return nil, err
	}
	return &TargetSnapshot{BranchID: record.BranchID, PersonID: record.PersonID, Committed: true, Data: data}, nil
}

// merge only changes the status; the rest of a record is identity.
func (t *AttendanceTarget) merge(ctx context.Context, id string, newData []byte) (*models.AttendanceRecord, error) {
	current, err := t.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergeProposal(*current, newData, "status")
	if err != nil {
		return nil, err
	}
	merged.Status = models.AttendanceStatus(strings.ToUpper(strings.TrimSpace(string(merged.Status))))
	if !merged.Status.Valid() {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "status must be one of PRESENT, ABSENT, TARDY, HALF_DAY"),
			map[string]string{"status": "attendance_status"},
		)
	}
	return &merged, nil
}

func (t *AttendanceTarget) Preview(ctx context.Context, id string, newData []byte) ([]byte, error) {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return nil, err
	}
	return snapshotOf(merged)
}

func (t *AttendanceTarget) ApplyUpdate(ctx context.Context, id string, newData []byte) error {
	merged, err := t.merge(ctx, id, newData)
	if err != nil {
		return err
	}
	return t.repo.UpdateRecordStatus(ctx, id, merged.Status)
}

func (t *AttendanceTarget) Delete(ctx context.Context, id string) error {
	return t.repo.DeleteRecord(ctx, id)
}
