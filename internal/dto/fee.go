package dto

import "github.com/noah-isme/verticx-api/internal/models"

// FeeTemplateRequest creates or edits a draft fee template.
type FeeTemplateRequest struct {
	BranchID         string              `json:"branchId"`
	Name             string              `json:"name" validate:"required"`
	GradeLevel       int                 `json:"gradeLevel" validate:"min=0,max=12"`
	MonthlyBreakdown []models.MonthlyFee `json:"monthlyBreakdown" validate:"required,len=12"`
}
