package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/service"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/response"
)

// LeaveHandler exposes leave applications.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs LeaveHandler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// Apply godoc
// @Summary Apply for leave
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ApplyLeaveRequest true "Leave application"
// @Success 201 {object} response.Envelope
// @Router /leaves [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ApplyLeaveRequest
	if !bindJSON(c, &req, "invalid leave application") {
		return
	}
	leave, err := h.leaves.Apply(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, leave)
}

// Review godoc
// @Summary Approve or reject a leave application
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param payload body dto.ReviewRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /leaves/{id}/review [post]
func (h *LeaveHandler) Review(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req, "invalid review payload") {
		return
	}
	leave, err := h.leaves.Review(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, leave)
}

// ListForPerson godoc
// @Summary List a person's leave applications
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} response.Envelope
// @Router /people/{id}/leaves [get]
func (h *LeaveHandler) ListForPerson(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	leaves, err := h.leaves.ListForUser(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, leaves)
}

// ListByBranch godoc
// @Summary List leave applications of a branch
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param branchId query string false "Branch ID (superadmin only)"
// @Success 200 {object} response.Envelope
// @Router /leaves [get]
func (h *LeaveHandler) ListByBranch(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var query dto.LeaveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	leaves, err := h.leaves.ListByBranch(c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, leaves)
}
