package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/response"
)

type changeRequestService interface {
	Submit(ctx context.Context, actor models.Actor, req dto.SubmitChangeRequest) (*models.ChangeRequest, error)
	Review(ctx context.Context, actor models.Actor, id string, req dto.ReviewRequest) (*models.ChangeRequest, error)
	List(ctx context.Context, actor models.Actor, query dto.ChangeRequestQuery) ([]models.ChangeRequest, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.ChangeRequest, error)
}

// ChangeRequestHandler exposes the change-request workflow.
type ChangeRequestHandler struct {
	service changeRequestService
}

// NewChangeRequestHandler constructs the handler.
func NewChangeRequestHandler(service changeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{service: service}
}

// Submit godoc
// @Summary Submit a change request
// @Description Proposes an update or deletion of a committed record. Send the form instance id as Idempotency-Key.
// @Tags Change Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Form instance id"
// @Param payload body dto.SubmitChangeRequest true "Change request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /change-requests [post]
func (h *ChangeRequestHandler) Submit(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.SubmitChangeRequest
	if !bindJSON(c, &req, "invalid change request") {
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(IdempotencyHeader))
	cr, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cr)
}

// Review godoc
// @Summary Approve or reject a change request
// @Description Approval applies the change in the same transaction as the status update.
// @Tags Change Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param payload body dto.ReviewRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /change-requests/{id}/review [post]
func (h *ChangeRequestHandler) Review(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req, "invalid review payload") {
		return
	}
	cr, err := h.service.Review(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cr)
}

// List godoc
// @Summary List change requests
// @Tags Change Requests
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param entityType query string false "Entity type"
// @Param branchId query string false "Branch ID (superadmin only)"
// @Success 200 {object} response.Envelope
// @Router /change-requests [get]
func (h *ChangeRequestHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var query dto.ChangeRequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	requests, err := h.service.List(c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, requests)
}

// Get godoc
// @Summary Get a change request
// @Tags Change Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Success 200 {object} response.Envelope
// @Router /change-requests/{id} [get]
func (h *ChangeRequestHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	cr, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cr)
}

type entityChangeRequester interface {
	RequestUpdate(ctx context.Context, actor models.Actor, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error)
	RequestDeletion(ctx context.Context, actor models.Actor, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error)
}

// entityChanges serves the update and deletion request routes shared by
// every lifecycle-managed record.
type entityChanges struct {
	requester entityChangeRequester
}

func (h entityChanges) RequestUpdate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.EntityUpdateRequest
	if !bindJSON(c, &req, "invalid update request") {
		return
	}
	cr, err := h.requester.RequestUpdate(c.Request.Context(), actor, c.Param("id"), strings.TrimSpace(c.GetHeader(IdempotencyHeader)), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cr)
}

func (h entityChanges) RequestDeletion(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.EntityDeletionRequest
	if !bindJSON(c, &req, "invalid deletion request") {
		return
	}
	cr, err := h.requester.RequestDeletion(c.Request.Context(), actor, c.Param("id"), strings.TrimSpace(c.GetHeader(IdempotencyHeader)), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cr)
}
