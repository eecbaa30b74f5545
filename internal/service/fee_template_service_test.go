package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
)

type recordingSubmitter struct {
	requests []dto.SubmitChangeRequest
}

func (r *recordingSubmitter) Submit(ctx context.Context, actor models.Actor, req dto.SubmitChangeRequest) (*models.ChangeRequest, error) {
	r.requests = append(r.requests, req)
	return &models.ChangeRequest{ID: "cr-1"}, nil
}

func feeRequest() dto.FeeTemplateRequest {
	months := fullYear(1000)
	months[0].Breakdown = append(months[0].Breakdown, models.FeeComponent{Component: " ADMISSION ", Amount: 250.5})
	months[3].Month = "july"
	return dto.FeeTemplateRequest{Name: " Grade 1 ", GradeLevel: 1, MonthlyBreakdown: months}
}

func TestCreateFeeTemplateStartsAsDraft(t *testing.T) {
	repo := newMemFeeTemplates()
	bus := &recordingBus{}
	svc := NewFeeTemplateService(repo, nil, bus, &recordingAudit{}, nil, nil)

	tpl, err := svc.Create(context.Background(), principal(), feeRequest())
	require.NoError(t, err)
	assert.Equal(t, models.LifecycleDraft, tpl.Lifecycle)
	assert.Equal(t, "Grade 1", tpl.Name)
	assert.Equal(t, "branch-1", tpl.BranchID)
	assert.Equal(t, "JULY", tpl.MonthlyBreakdown[3].Month)
	assert.Equal(t, "ADMISSION", tpl.MonthlyBreakdown[0].Breakdown[1].Component)
	assert.InDelta(t, 12250.5, tpl.Amount(), 0.001)
	assert.Equal(t, []events.Event{events.FeeTemplateChanged{TemplateID: tpl.ID, BranchID: "branch-1"}}, bus.events)

	raw, err := json.Marshal(tpl)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"amount":12250.5`)
}

func TestFeeTemplateValidation(t *testing.T) {
	svc := NewFeeTemplateService(newMemFeeTemplates(), nil, nil, nil, nil, nil)

	cases := map[string]func(*dto.FeeTemplateRequest){
		"eleven months":   func(r *dto.FeeTemplateRequest) { r.MonthlyBreakdown = r.MonthlyBreakdown[:11] },
		"wrong order":     func(r *dto.FeeTemplateRequest) { r.MonthlyBreakdown[0].Month, r.MonthlyBreakdown[1].Month = "MAY", "APRIL" },
		"negative amount": func(r *dto.FeeTemplateRequest) { r.MonthlyBreakdown[2].Breakdown[0].Amount = -1 },
		"nan amount":      func(r *dto.FeeTemplateRequest) { r.MonthlyBreakdown[2].Breakdown[0].Amount = math.NaN() },
		"unnamed":         func(r *dto.FeeTemplateRequest) { r.MonthlyBreakdown[5].Breakdown[0].Component = "  " },
		"blank name":      func(r *dto.FeeTemplateRequest) { r.Name = "   " },
		"grade too high":  func(r *dto.FeeTemplateRequest) { r.GradeLevel = 13 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := feeRequest()
			mutate(&req)
			_, err := svc.Create(context.Background(), principal(), req)
			assert.True(t, errors.Is(err, appErrors.ErrValidation), "got %v", err)
		})
	}
}

func TestFeeTemplateLifecycle(t *testing.T) {
	repo := newMemFeeTemplates()
	svc := NewFeeTemplateService(repo, nil, nil, nil, nil, nil)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, principal(), feeRequest())
	require.NoError(t, err)

	req := feeRequest()
	req.Name = "Grade 1 revised"
	updated, err := svc.UpdateDraft(ctx, principal(), tpl.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Grade 1 revised", updated.Name)

	committed, err := svc.Commit(ctx, principal(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LifecycleCommitted, committed.Lifecycle)

	_, err = svc.Commit(ctx, principal(), tpl.ID)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.UpdateDraft(ctx, principal(), tpl.ID, feeRequest())
	assert.True(t, errors.Is(err, appErrors.ErrLocked))

	err = svc.DeleteDraft(ctx, principal(), tpl.ID)
	assert.True(t, errors.Is(err, appErrors.ErrLocked))
	assert.Contains(t, repo.items, tpl.ID)

	outsider := principal()
	outsider.BranchID = "branch-2"
	_, err = svc.Get(ctx, outsider, tpl.ID)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	committedOnly, err := svc.List(ctx, principal(), "", "committed")
	require.NoError(t, err)
	assert.Len(t, committedOnly, 1)

	_, err = svc.List(ctx, principal(), "", "archived")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestDeleteDraftFeeTemplate(t *testing.T) {
	repo := newMemFeeTemplates()
	svc := NewFeeTemplateService(repo, nil, nil, nil, nil, nil)

	tpl, err := svc.Create(context.Background(), principal(), feeRequest())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteDraft(context.Background(), principal(), tpl.ID))
	assert.NotContains(t, repo.items, tpl.ID)

	err = svc.DeleteDraft(context.Background(), principal(), tpl.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestFeeTemplateChangeRequestsDelegate(t *testing.T) {
	submitter := &recordingSubmitter{}
	svc := NewFeeTemplateService(newMemFeeTemplates(), submitter, nil, nil, nil, nil)

	_, err := svc.RequestUpdate(context.Background(), teacher(), "tpl-1", "form-1", dto.EntityUpdateRequest{NewData: json.RawMessage(`{"name":"x"}`), Reason: "typo"})
	require.NoError(t, err)
	_, err = svc.RequestDeletion(context.Background(), teacher(), "tpl-1", "", dto.EntityDeletionRequest{Reason: "duplicate"})
	require.NoError(t, err)

	require.Len(t, submitter.requests, 2)
	assert.Equal(t, "FEE_TEMPLATE", submitter.requests[0].EntityType)
	assert.Equal(t, "UPDATE", submitter.requests[0].RequestType)
	assert.Equal(t, "form-1", submitter.requests[0].IdempotencyKey)
	assert.Equal(t, "DELETE", submitter.requests[1].RequestType)
	assert.Nil(t, submitter.requests[1].NewData)
}

func TestFeeTemplateExportPDF(t *testing.T) {
	repo := newMemFeeTemplates()
	svc := NewFeeTemplateService(repo, nil, nil, nil, nil, nil)
	tpl, err := svc.Create(context.Background(), principal(), feeRequest())
	require.NoError(t, err)

	data, filename, err := svc.ExportPDF(context.Background(), principal(), tpl.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "fee-template-"+tpl.ID+".pdf", filename)
}
