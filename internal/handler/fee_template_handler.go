package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/service"
	"github.com/noah-isme/verticx-api/pkg/export"
	"github.com/noah-isme/verticx-api/pkg/response"
)

// FeeTemplateHandler exposes fee template endpoints.
type FeeTemplateHandler struct {
	entityChanges
	fees *service.FeeTemplateService
}

// NewFeeTemplateHandler constructs FeeTemplateHandler.
func NewFeeTemplateHandler(fees *service.FeeTemplateService) *FeeTemplateHandler {
	return &FeeTemplateHandler{entityChanges: entityChanges{requester: fees}, fees: fees}
}

// List godoc
// @Summary List fee templates
// @Tags Fee Templates
// @Produce json
// @Security BearerAuth
// @Param lifecycle query string false "DRAFT or COMMITTED"
// @Param branchId query string false "Branch ID (superadmin only)"
// @Success 200 {object} response.Envelope
// @Router /fee-templates [get]
func (h *FeeTemplateHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	templates, err := h.fees.List(c.Request.Context(), actor, c.Query("branchId"), c.Query("lifecycle"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, templates)
}

// Get godoc
// @Summary Get fee template
// @Tags Fee Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 200 {object} response.Envelope
// @Router /fee-templates/{id} [get]
func (h *FeeTemplateHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	tpl, err := h.fees.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tpl)
}

// Create godoc
// @Summary Create draft fee template
// @Tags Fee Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.FeeTemplateRequest true "Fee template"
// @Success 201 {object} response.Envelope
// @Router /fee-templates [post]
func (h *FeeTemplateHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.FeeTemplateRequest
	if !bindJSON(c, &req, "invalid fee template") {
		return
	}
	tpl, err := h.fees.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// Update godoc
// @Summary Update draft fee template
// @Tags Fee Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Param payload body dto.FeeTemplateRequest true "Fee template"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /fee-templates/{id} [put]
func (h *FeeTemplateHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.FeeTemplateRequest
	if !bindJSON(c, &req, "invalid fee template") {
		return
	}
	tpl, err := h.fees.UpdateDraft(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tpl)
}

// Delete godoc
// @Summary Delete draft fee template
// @Tags Fee Templates
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /fee-templates/{id} [delete]
func (h *FeeTemplateHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.fees.DeleteDraft(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Commit godoc
// @Summary Commit fee template
// @Tags Fee Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 200 {object} response.Envelope
// @Router /fee-templates/{id}/commit [post]
func (h *FeeTemplateHandler) Commit(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	tpl, err := h.fees.Commit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// ExportPDF godoc
// @Summary Download fee template breakdown
// @Tags Fee Templates
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 200 {file} file
// @Router /fee-templates/{id}/export [get]
func (h *FeeTemplateHandler) ExportPDF(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	data, filename, err := h.fees.ExportPDF(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, export.FormatPDF.ContentType(), filename, data)
}
