package calendar

import (
	"time"
)

// DayStatus is the single status shown for one calendar day.
type DayStatus string

const (
	StatusPresent  DayStatus = "PRESENT"
	StatusAbsent   DayStatus = "ABSENT"
	StatusTardy    DayStatus = "TARDY"
	StatusHalfDay  DayStatus = "HALF_DAY"
	StatusOnLeave  DayStatus = "ON_LEAVE"
	StatusNoRecord DayStatus = "NO_RECORD"
)

// AllStatuses lists every status in display order.
var AllStatuses = []DayStatus{StatusPresent, StatusAbsent, StatusTardy, StatusHalfDay, StatusOnLeave, StatusNoRecord}

// severity orders record statuses worst first.
var severity = map[DayStatus]int{
	StatusAbsent:  4,
	StatusTardy:   3,
	StatusHalfDay: 2,
	StatusPresent: 1,
}

// Record is one attendance mark. Date is YYYY-MM-DD.
type Record struct {
	Date   string
	Status DayStatus
}

// Leave is a leave application reduced to what the calendar needs.
type Leave struct {
	StartDate string
	EndDate   string
	Approved  bool
}

// StatusMap maps a YYYY-MM-DD date to its day status.
type StatusMap map[string]DayStatus

// StatusFor returns the status of date, NO_RECORD when nothing is known.
func (m StatusMap) StatusFor(date time.Time) DayStatus {
	if s, ok := m[date.Format(DateLayout)]; ok {
		return s
	}
	return StatusNoRecord
}

// MaxLeaveDays is the longest leave, both ends included, that is expanded
// into calendar days.
const MaxLeaveDays = 366

// Window limits leave expansion to the dates From through To. The zero
// Window is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// MonthWindow covers every day of m.
func MonthWindow(m Month) Window {
	return Window{From: m.First(), To: m.Last()}
}

func (w Window) clip(start, end time.Time) (time.Time, time.Time) {
	if !w.From.IsZero() && start.Before(w.From) {
		start = w.From
	}
	if !w.To.IsZero() && end.After(w.To) {
		end = w.To
	}
	return start, end
}

// Aggregate folds attendance records and leaves into one status per day.
// Approved leave days are written first and are never overwritten. Multiple
// records on one date collapse to the worst status.
func Aggregate(records []Record, leaves []Leave) StatusMap {
	return AggregateWithin(Window{}, records, leaves)
}

// AggregateWithin is Aggregate with leave days outside w skipped. Each leave
// expands to at most MaxLeaveDays days from its start.
func AggregateWithin(w Window, records []Record, leaves []Leave) StatusMap {
	out := StatusMap{}

	for _, leave := range leaves {
		if !leave.Approved {
			continue
		}
		start, err := time.Parse(DateLayout, leave.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(DateLayout, leave.EndDate)
		if err != nil {
			continue
		}
		if limit := start.AddDate(0, 0, MaxLeaveDays-1); end.After(limit) {
			end = limit
		}
		start, end = w.clip(start, end)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			out[d.Format(DateLayout)] = StatusOnLeave
		}
	}

	collapsed := map[string]DayStatus{}
	for _, rec := range records {
		if _, ok := severity[rec.Status]; !ok {
			continue
		}
		if cur, ok := collapsed[rec.Date]; !ok || severity[rec.Status] > severity[cur] {
			collapsed[rec.Date] = rec.Status
		}
	}

	for date, status := range collapsed {
		if _, exists := out[date]; !exists {
			out[date] = status
		}
	}
	return out
}

// Cell is one slot of the rendered month. Blank cells have an empty Date.
type Cell struct {
	Date   string    `json:"date,omitempty"`
	Day    int       `json:"day,omitempty"`
	Status DayStatus `json:"status,omitempty"`
}

// MonthView is the month grid with a status per day and totals per status.
type MonthView struct {
	Month         string            `json:"month"`
	PrevMonth     string            `json:"prevMonth"`
	NextMonth     string            `json:"nextMonth"`
	LeadingBlanks int               `json:"leadingBlanks"`
	Cells         []Cell            `json:"cells"`
	Counts        map[DayStatus]int `json:"counts"`
}

// BuildMonthView renders month using statuses.
func BuildMonthView(month Month, statuses StatusMap) MonthView {
	grid := MonthGrid(month.Year, month.Month)
	view := MonthView{
		Month:         month.String(),
		PrevMonth:     month.Prev().String(),
		NextMonth:     month.Next().String(),
		LeadingBlanks: LeadingBlanks(month.Year, month.Month),
		Cells:         make([]Cell, 0, len(grid)),
		Counts:        make(map[DayStatus]int, len(AllStatuses)),
	}
	for _, s := range AllStatuses {
		view.Counts[s] = 0
	}

	for _, day := range grid {
		if day == nil {
			view.Cells = append(view.Cells, Cell{})
			continue
		}
		status := statuses.StatusFor(*day)
		view.Cells = append(view.Cells, Cell{Date: day.Format(DateLayout), Day: day.Day(), Status: status})
		view.Counts[status]++
	}
	return view
}
