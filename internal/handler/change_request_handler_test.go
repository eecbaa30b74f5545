package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type changeRequestServiceMock struct {
	submitted *dto.SubmitChangeRequest
	reviewed  *dto.ReviewRequest
	reviewID  string
	query     dto.ChangeRequestQuery
	actor     models.Actor
	err       error
}

func (m *changeRequestServiceMock) Submit(_ context.Context, actor models.Actor, req dto.SubmitChangeRequest) (*models.ChangeRequest, error) {
	m.actor = actor
	m.submitted = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.ChangeRequest{ID: "cr-1", TargetEntityID: req.TargetEntityID, Status: workflow.StatusPending}, nil
}

func (m *changeRequestServiceMock) Review(_ context.Context, actor models.Actor, id string, req dto.ReviewRequest) (*models.ChangeRequest, error) {
	m.actor = actor
	m.reviewID = id
	m.reviewed = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.ChangeRequest{ID: id, Status: workflow.Status(req.Decision)}, nil
}

func (m *changeRequestServiceMock) List(_ context.Context, actor models.Actor, query dto.ChangeRequestQuery) ([]models.ChangeRequest, error) {
	m.actor = actor
	m.query = query
	return []models.ChangeRequest{{ID: "cr-1"}}, m.err
}

func (m *changeRequestServiceMock) Get(_ context.Context, _ models.Actor, id string) (*models.ChangeRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.ChangeRequest{ID: id}, nil
}

type entityRequesterMock struct {
	id      string
	key     string
	update  *dto.EntityUpdateRequest
	removal *dto.EntityDeletionRequest
}

func (m *entityRequesterMock) RequestUpdate(_ context.Context, _ models.Actor, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error) {
	m.id, m.key, m.update = id, key, &req
	return &models.ChangeRequest{ID: "cr-2", TargetEntityID: id, RequestType: workflow.RequestUpdate}, nil
}

func (m *entityRequesterMock) RequestDeletion(_ context.Context, _ models.Actor, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error) {
	m.id, m.key, m.removal = id, key, &req
	return &models.ChangeRequest{ID: "cr-3", TargetEntityID: id, RequestType: workflow.RequestDelete}, nil
}

func TestChangeRequestSubmitForwardsIdempotencyKey(t *testing.T) {
	svc := &changeRequestServiceMock{}
	handler := NewChangeRequestHandler(svc)
	body := []byte(`{"entityType":"FEE_TEMPLATE","requestType":"UPDATE","targetEntityId":"fee-1","newData":{"name":"Tuition"},"reason":"typo"}`)
	c, w := newGinContext(http.MethodPost, "/change-requests", body)
	c.Request.Header.Set(IdempotencyHeader, " form-42 ")
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "form-42", svc.submitted.IdempotencyKey)
	assert.Equal(t, "fee-1", svc.submitted.TargetEntityID)
	assert.JSONEq(t, `{"name":"Tuition"}`, string(svc.submitted.NewData))
	assert.Equal(t, "teacher-1", svc.actor.ID)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "cr-1", env.Data["id"])
	assert.Equal(t, "PENDING", env.Data["status"])
}

func TestChangeRequestSubmitRejectsMalformedBody(t *testing.T) {
	svc := &changeRequestServiceMock{}
	handler := NewChangeRequestHandler(svc)
	c, w := newGinContext(http.MethodPost, "/change-requests", []byte(`{"entityType":`))
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.Submit(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.submitted)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
}

func TestChangeRequestSubmitInFlight(t *testing.T) {
	handler := NewChangeRequestHandler(&changeRequestServiceMock{err: appErrors.ErrSubmissionInFlight})
	body := []byte(`{"entityType":"EXAM_MARK","requestType":"DELETE","targetEntityId":"mark-1","reason":"duplicate"}`)
	c, w := newGinContext(http.MethodPost, "/change-requests", body)
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	handler.Submit(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrSubmissionInFlight.Code, env.Error.Code)
}

func TestChangeRequestReview(t *testing.T) {
	svc := &changeRequestServiceMock{}
	handler := NewChangeRequestHandler(svc)
	c, w := newGinContext(http.MethodPost, "/change-requests/cr-9/review", []byte(`{"decision":"APPROVED","note":"ok"}`))
	c.Params = gin.Params{{Key: "id", Value: "cr-9"}}
	withClaims(c, "principal-1", models.RolePrincipal, "branch-1")

	handler.Review(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cr-9", svc.reviewID)
	assert.Equal(t, "ok", svc.reviewed.Note)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "APPROVED", env.Data["status"])
}

func TestChangeRequestReviewAlreadyDecided(t *testing.T) {
	handler := NewChangeRequestHandler(&changeRequestServiceMock{err: appErrors.ErrInvalidTransition})
	c, w := newGinContext(http.MethodPost, "/change-requests/cr-9/review", []byte(`{"decision":"REJECTED"}`))
	c.Params = gin.Params{{Key: "id", Value: "cr-9"}}
	withClaims(c, "principal-1", models.RolePrincipal, "branch-1")

	handler.Review(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, env.Error.Code)
}

func TestChangeRequestListBindsFilters(t *testing.T) {
	svc := &changeRequestServiceMock{}
	handler := NewChangeRequestHandler(svc)
	c, w := newGinContext(http.MethodGet, "/change-requests?status=PENDING&status=APPROVED&entityType=EXAM_MARK", nil)
	withClaims(c, "registrar-1", models.RoleRegistrar, "branch-1")

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"PENDING", "APPROVED"}, svc.query.Statuses)
	assert.Equal(t, "EXAM_MARK", svc.query.EntityType)
}

func TestChangeRequestGetRequiresClaims(t *testing.T) {
	handler := NewChangeRequestHandler(&changeRequestServiceMock{})
	c, w := newGinContext(http.MethodGet, "/change-requests/cr-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "cr-1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntityChangesForwardPathAndKey(t *testing.T) {
	requester := &entityRequesterMock{}
	changes := entityChanges{requester: requester}

	c, w := newGinContext(http.MethodPost, "/syllabus/lectures/lec-1/update-requests", []byte(`{"newData":{"title":"Limits"},"reason":"rename"}`))
	c.Params = gin.Params{{Key: "id", Value: "lec-1"}}
	c.Request.Header.Set(IdempotencyHeader, "form-7")
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	changes.RequestUpdate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "lec-1", requester.id)
	assert.Equal(t, "form-7", requester.key)
	assert.Equal(t, "rename", requester.update.Reason)

	c, w = newGinContext(http.MethodPost, "/syllabus/lectures/lec-1/deletion-requests", []byte(`{"reason":"obsolete"}`))
	c.Params = gin.Params{{Key: "id", Value: "lec-1"}}
	withClaims(c, "teacher-1", models.RoleTeacher, "branch-1")

	changes.RequestDeletion(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "", requester.key)
	assert.Equal(t, "obsolete", requester.removal.Reason)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "DELETE", env.Data["requestType"])
}
