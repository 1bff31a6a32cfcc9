package domain

import "strings"

// Recognized date_range values. Anything else leaves the row set untouched.
const (
	DateRangePastWeek    = "past_week"
	DateRangePastMonth   = "past_month"
	DateRangeLast3Months = "last_3_months"
)

var dateRangeDays = map[string]int{
	DateRangePastWeek:    7,
	DateRangePastMonth:   30,
	DateRangeLast3Months: 90,
}

// Filter holds the raw narrowing predicates of a list request. All
// predicates are independent and compose as a logical AND on top of the
// owner restriction, which is applied unconditionally by the repository.
type Filter struct {
	DateRange string
	StartDate *Date
	EndDate   *Date
	Category  string
}

// DateWindow is an inclusive [Start, End] day window.
type DateWindow struct {
	Start Date
	End   Date
}

// ResolvedFilter is a Filter with date_range resolved against a concrete
// "today". Resolution happens exactly once per request.
type ResolvedFilter struct {
	Window    *DateWindow
	StartDate *Date
	EndDate   *Date
	Category  string
}

// Resolve turns the date_range bucket into an inclusive window ending at
// today. Unrecognized values produce no window.
func (f Filter) Resolve(today Date) ResolvedFilter {
	resolved := ResolvedFilter{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Category:  f.Category,
	}
	if days, ok := dateRangeDays[f.DateRange]; ok {
		resolved.Window = &DateWindow{Start: today.AddDays(-days), End: today}
	}
	return resolved
}

// Matches reports whether the expense passes every predicate. This is the
// reference semantics the SQL built by the repository mirrors: the category
// predicate is a case-insensitive substring match, date bounds are
// inclusive on both ends.
func (f ResolvedFilter) Matches(e Expense) bool {
	if f.Window != nil && (e.Date.Before(f.Window.Start.Time) || e.Date.After(f.Window.End.Time)) {
		return false
	}
	if f.StartDate != nil && e.Date.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && e.Date.After(f.EndDate.Time) {
		return false
	}
	if f.Category != "" && !strings.Contains(strings.ToLower(string(e.Category)), strings.ToLower(f.Category)) {
		return false
	}
	return true
}
