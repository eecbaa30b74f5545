package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AcademicMonths is the fixed order of a fee breakdown, April through March.
var AcademicMonths = []string{
	"APRIL", "MAY", "JUNE", "JULY", "AUGUST", "SEPTEMBER",
	"OCTOBER", "NOVEMBER", "DECEMBER", "JANUARY", "FEBRUARY", "MARCH",
}

// FeeComponent is one named charge within a month.
type FeeComponent struct {
	Component string  `json:"component"`
	Amount    float64 `json:"amount"`
}

// MonthlyFee lists the charges due in one academic month.
type MonthlyFee struct {
	Month     string         `json:"month"`
	Breakdown []FeeComponent `json:"breakdown"`
}

// Total sums the month's components.
func (m MonthlyFee) Total() float64 {
	var total float64
	for _, c := range m.Breakdown {
		total += c.Amount
	}
	return total
}

// FeeTemplate is a branch's yearly fee plan for a grade level. The annual
// amount is derived from the breakdown and never stored.
type FeeTemplate struct {
	ID               string                          `db:"id" json:"id"`
	BranchID         string                          `db:"branch_id" json:"branchId"`
	Name             string                          `db:"name" json:"name"`
	GradeLevel       int                             `db:"grade_level" json:"gradeLevel"`
	MonthlyBreakdown datatypes.JSONSlice[MonthlyFee] `db:"monthly_breakdown" json:"monthlyBreakdown"`
	Lifecycle        Lifecycle                       `db:"lifecycle" json:"lifecycle"`
	CreatedBy        string                          `db:"created_by" json:"createdBy"`
	CreatedAt        time.Time                       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time                       `db:"updated_at" json:"updatedAt"`
}

// Amount is the sum of every component of every month.
func (f FeeTemplate) Amount() float64 {
	var total float64
	for _, m := range f.MonthlyBreakdown {
		total += m.Total()
	}
	return total
}

// MarshalJSON adds the computed amount to the serialized template.
func (f FeeTemplate) MarshalJSON() ([]byte, error) {
	type plain FeeTemplate
	return json.Marshal(struct {
		plain
		Amount float64 `json:"amount"`
	}{plain: plain(f), Amount: f.Amount()})
}
