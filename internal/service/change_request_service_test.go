package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
)

type changeRequestFixture struct {
	svc   *ChangeRequestService
	fees  *memFeeTemplates
	crs   *memChangeRequests
	tx    *stubTx
	bus   *recordingBus
	audit *recordingAudit
}

func committedTemplate() models.FeeTemplate {
	return models.FeeTemplate{
		ID:               "tpl-1",
		BranchID:         "branch-1",
		Name:             "Grade 1",
		GradeLevel:       1,
		MonthlyBreakdown: fullYear(100),
		Lifecycle:        models.LifecycleCommitted,
		CreatedBy:        "admin-1",
	}
}

func newChangeRequestFixture(templates ...models.FeeTemplate) *changeRequestFixture {
	f := &changeRequestFixture{
		fees:  newMemFeeTemplates(templates...),
		crs:   newMemChangeRequests(),
		bus:   &recordingBus{},
		audit: &recordingAudit{},
	}
	f.tx = &stubTx{snapshots: []func() func(){f.fees.snapshot, f.crs.snapshot}}
	f.svc = NewChangeRequestService(ChangeRequestServiceDeps{
		Repo:    f.crs,
		Targets: map[models.EntityType]ChangeTarget{models.EntityFeeTemplate: NewFeeTemplateTarget(f.fees)},
		Tx:      f.tx,
		Guard:   NewSubmissionGuard(nil, time.Minute, nil),
		Bus:     f.bus,
		Audit:   f.audit,
	})
	return f
}

func updateRequest(newData string, reason string) dto.SubmitChangeRequest {
	return dto.SubmitChangeRequest{
		EntityType:     string(models.EntityFeeTemplate),
		RequestType:    string(workflow.RequestUpdate),
		TargetEntityID: "tpl-1",
		NewData:        json.RawMessage(newData),
		Reason:         reason,
	}
}

func TestSubmitBlankReasonNeverPersisted(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())

	_, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Grade 1 revised"}`, "   "))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.True(t, errors.Is(err, workflow.ErrReasonRequired))
	assert.Zero(t, f.crs.created)
	assert.Empty(t, f.bus.events)
}

func TestSubmitRejectsUpdateEqualToOriginal(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	original, err := json.Marshal(committedTemplate())
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), teacher(), updateRequest(string(original), "no change"))
	assert.True(t, errors.Is(err, workflow.ErrNoChange))

	_, err = f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Grade 1","gradeLevel":1.0}`, "same values"))
	assert.True(t, errors.Is(err, workflow.ErrNoChange))
	assert.Zero(t, f.crs.created)
}

func TestSubmitStoresServerSnapshot(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())

	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Grade 1 revised"}`, "typo in name"))
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPending, cr.Status)
	assert.Equal(t, "Tess Teacher", cr.RequesterName)
	assert.Equal(t, "branch-1", cr.BranchID)
	require.NotNil(t, cr.NewData)
	assert.JSONEq(t, `{"name":"Grade 1 revised"}`, string(*cr.NewData))

	var original map[string]interface{}
	require.NoError(t, json.Unmarshal(cr.OriginalData, &original))
	assert.Equal(t, "Grade 1", original["name"])
	assert.Equal(t, float64(1200), original["amount"])

	require.Len(t, f.bus.events, 1)
	assert.Equal(t, events.ChangeRequestSubmitted{RequestID: cr.ID, BranchID: "branch-1", EntityType: "FEE_TEMPLATE", TargetID: "tpl-1"}, f.bus.events[0])
	assert.Equal(t, []string{models.AuditActionChangeRequestSubmit}, f.audit.actions())
}

func TestSubmitTargetChecks(t *testing.T) {
	draft := committedTemplate()
	draft.ID = "tpl-draft"
	draft.Lifecycle = models.LifecycleDraft
	foreign := committedTemplate()
	foreign.ID = "tpl-foreign"
	foreign.BranchID = "branch-2"
	f := newChangeRequestFixture(committedTemplate(), draft, foreign)

	req := updateRequest(`{"name":"x"}`, "reason")
	req.TargetEntityID = "missing"
	_, err := f.svc.Submit(context.Background(), teacher(), req)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	req.TargetEntityID = "tpl-draft"
	_, err = f.svc.Submit(context.Background(), teacher(), req)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	req.TargetEntityID = "tpl-foreign"
	_, err = f.svc.Submit(context.Background(), teacher(), req)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	req.EntityType = "LIBRARY_BOOK"
	_, err = f.svc.Submit(context.Background(), teacher(), req)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	del := dto.SubmitChangeRequest{EntityType: "FEE_TEMPLATE", RequestType: "DELETE", TargetEntityID: "tpl-1", NewData: json.RawMessage(`{"name":"x"}`), Reason: "remove"}
	_, err = f.svc.Submit(context.Background(), teacher(), del)
	assert.True(t, errors.Is(err, workflow.ErrUnexpectedProposal))
	assert.Zero(t, f.crs.created)
}

func TestSubmitSecondPendingRequestConflicts(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	_, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"A"}`, "first"))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), registrar(), updateRequest(`{"name":"B"}`, "second"))
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, 1, f.crs.created)
}

func TestSubmitHeldFormKeyIsRejected(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	release, err := f.svc.guard.Acquire(context.Background(), "teacher-1", "form-42")
	require.NoError(t, err)

	req := updateRequest(`{"name":"A"}`, "reason")
	req.IdempotencyKey = "form-42"
	_, err = f.svc.Submit(context.Background(), teacher(), req)
	assert.True(t, errors.Is(err, appErrors.ErrSubmissionInFlight))

	release()
	_, err = f.svc.Submit(context.Background(), teacher(), req)
	assert.NoError(t, err)
}

func TestReviewApprovedUpdateReplacesFields(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	newData, err := json.Marshal(map[string]interface{}{"name": "Grade 1 revised", "monthlyBreakdown": fullYear(150)})
	require.NoError(t, err)
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(string(newData), "new rates"))
	require.NoError(t, err)

	reviewed, err := f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED", Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, reviewed.Status)
	assert.Equal(t, "principal-1", *reviewed.ReviewedBy)

	stored := f.fees.items["tpl-1"]
	assert.Equal(t, "Grade 1 revised", stored.Name)
	assert.Equal(t, fullYear(150), []models.MonthlyFee(stored.MonthlyBreakdown))
	assert.Equal(t, float64(1800), stored.Amount())
	assert.Equal(t, models.LifecycleCommitted, stored.Lifecycle)
	assert.Equal(t, workflow.StatusApproved, f.crs.items[cr.ID].Status)

	last := f.bus.events[len(f.bus.events)-1]
	assert.Equal(t, events.TypeChangeRequestReviewed, last.EventType())
	assert.Equal(t, "APPROVED", last.(events.ChangeRequestReviewed).Decision)
}

func TestReviewRejectedLeavesTargetUntouched(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)
	before := f.fees.items["tpl-1"]

	reviewed, err := f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "REJECTED"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, reviewed.Status)
	assert.Equal(t, before, f.fees.items["tpl-1"])
}

func TestReviewApprovedDeleteRemovesTarget(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), dto.SubmitChangeRequest{
		EntityType: "FEE_TEMPLATE", RequestType: "DELETE", TargetEntityID: "tpl-1", Reason: "duplicate template",
	})
	require.NoError(t, err)
	assert.Nil(t, cr.NewData)
	assert.NotEmpty(t, cr.OriginalData)

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	require.NoError(t, err)
	_, exists := f.fees.items["tpl-1"]
	assert.False(t, exists)
}

func TestReviewIsTerminal(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "REJECTED"})
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
	assert.Equal(t, "Grade 1", f.fees.items["tpl-1"].Name)
}

func TestReviewApplyFailureKeepsRequestPending(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)
	eventsBefore := len(f.bus.events)

	reopened := committedTemplate()
	reopened.Lifecycle = models.LifecycleDraft
	f.fees.items["tpl-1"] = reopened

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, 1, f.tx.failures)
	assert.Equal(t, workflow.StatusPending, f.crs.items[cr.ID].Status)
	assert.Equal(t, reopened, f.fees.items["tpl-1"])
	assert.Len(t, f.bus.events, eventsBefore)
}

func TestSubmitAuditFailureStoresNothing(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	f.audit.err = errors.New("audit_logs: disk full")

	_, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.Equal(t, 1, f.tx.failures)
	assert.Empty(t, f.crs.items)
	assert.Empty(t, f.bus.events)
}

func TestReviewAuditFailureRollsBackDecision(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)
	f.audit.err = errors.New("audit_logs: disk full")

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.Equal(t, workflow.StatusPending, f.crs.items[cr.ID].Status)
	assert.Equal(t, committedTemplate(), f.fees.items["tpl-1"])
	assert.Equal(t, []string{models.AuditActionChangeRequestSubmit}, f.audit.actions())
}

func TestReviewAuthorization(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), teacher(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), teacher(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = f.svc.Review(context.Background(), registrar(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	otherBranch := principal()
	otherBranch.BranchID = "branch-2"
	_, err = f.svc.Review(context.Background(), otherBranch, cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "MAYBE"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, workflow.StatusPending, f.crs.items[cr.ID].Status)
}

func TestReviewerCannotApproveOwnRequest(t *testing.T) {
	f := newChangeRequestFixture(committedTemplate())
	cr, err := f.svc.Submit(context.Background(), principal(), updateRequest(`{"name":"Other"}`, "rename"))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), principal(), cr.ID, dto.ReviewRequest{Decision: "APPROVED"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestCanReviewMatrix(t *testing.T) {
	assert.True(t, CanReview(models.RolePrincipal, models.EntityFeeTemplate))
	assert.False(t, CanReview(models.RoleRegistrar, models.EntityFeeTemplate))
	assert.True(t, CanReview(models.RoleRegistrar, models.EntityExamMark))
	assert.True(t, CanReview(models.RoleRegistrar, models.EntityAttendance))
	assert.False(t, CanReview(models.RoleTeacher, models.EntityAttendance))
	assert.True(t, CanReview(models.RoleAdmin, models.EntitySyllabusLecture))
	assert.True(t, CanReview(models.RoleSuperAdmin, models.EntityExamMark))
}

func TestListScopesAndOrders(t *testing.T) {
	f := newChangeRequestFixture()
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	f.crs.listResult = []models.ChangeRequest{
		{ID: "a", RequestedAt: base},
		{ID: "c", RequestedAt: base.Add(time.Hour)},
		{ID: "b", RequestedAt: base.Add(time.Hour)},
	}

	got, err := f.svc.List(context.Background(), registrar(), dto.ChangeRequestQuery{Statuses: []string{"pending"}})
	require.NoError(t, err)
	assert.Equal(t, "registrar-1", f.crs.listFilter.RequesterID)
	assert.Equal(t, []models.EntityType{models.EntityExamMark, models.EntityAttendance}, f.crs.listFilter.EntityTypes)
	assert.Equal(t, "branch-1", f.crs.listFilter.BranchID)
	assert.Equal(t, []workflow.Status{workflow.StatusPending}, f.crs.listFilter.Statuses)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)

	_, err = f.svc.List(context.Background(), principal(), dto.ChangeRequestQuery{EntityType: "exam_mark"})
	require.NoError(t, err)
	assert.Empty(t, f.crs.listFilter.RequesterID)
	assert.Equal(t, models.EntityExamMark, f.crs.listFilter.EntityType)

	_, err = f.svc.List(context.Background(), student("s1"), dto.ChangeRequestQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = f.svc.List(context.Background(), principal(), dto.ChangeRequestQuery{BranchID: "branch-9"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}
