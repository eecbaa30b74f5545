package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/response"
)

type dashboardService interface {
	BranchSummary(ctx context.Context, actor models.Actor, branchID string) (*dto.BranchSummary, bool, error)
	PersonSummary(ctx context.Context, actor models.Actor, personID, month string) (*dto.PersonSummary, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Branch godoc
// @Summary Branch dashboard summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param branchId query string false "Branch ID (superadmin only)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/branch [get]
func (h *DashboardHandler) Branch(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.BranchSummary(c.Request.Context(), actor, strings.TrimSpace(c.Query("branchId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, summary, cacheHit, start)
}

// Person godoc
// @Summary Person month summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param month query string false "Month (YYYY-MM). Defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /dashboard/people/{id} [get]
func (h *DashboardHandler) Person(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.PersonSummary(c.Request.Context(), actor, c.Param("id"), strings.TrimSpace(c.Query("month")))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, summary, cacheHit, start)
}
