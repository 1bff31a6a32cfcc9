package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func expenseOn(date Date) Expense {
	return Expense{
		Title:    "Test expense",
		Amount:   decimal.NewFromFloat(10.00),
		Category: CategoryGroceries,
		Date:     date,
	}
}

func countMatches(filter ResolvedFilter, expenses []Expense) int {
	count := 0
	for _, e := range expenses {
		if filter.Matches(e) {
			count++
		}
	}
	return count
}

func TestFilter_DateRangeBuckets(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	expenses := []Expense{
		expenseOn(NewDate(2024, time.June, 15)),
		expenseOn(NewDate(2024, time.June, 10)),
		expenseOn(NewDate(2024, time.May, 16)),
		expenseOn(NewDate(2024, time.March, 27)),
	}

	pastWeek := Filter{DateRange: DateRangePastWeek}.Resolve(today)
	assert.Equal(t, 2, countMatches(pastWeek, expenses))

	pastMonth := Filter{DateRange: DateRangePastMonth}.Resolve(today)
	assert.Equal(t, 3, countMatches(pastMonth, expenses))

	last3Months := Filter{DateRange: DateRangeLast3Months}.Resolve(today)
	assert.Equal(t, 4, countMatches(last3Months, expenses))
}

func TestFilter_DateRangeBoundsAreInclusive(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	resolved := Filter{DateRange: DateRangePastWeek}.Resolve(today)

	assert.NotNil(t, resolved.Window)
	assert.Equal(t, NewDate(2024, time.June, 8), resolved.Window.Start)
	assert.Equal(t, today, resolved.Window.End)

	assert.True(t, resolved.Matches(expenseOn(NewDate(2024, time.June, 8))))
	assert.True(t, resolved.Matches(expenseOn(today)))
	assert.False(t, resolved.Matches(expenseOn(NewDate(2024, time.June, 7))))
	assert.False(t, resolved.Matches(expenseOn(NewDate(2024, time.June, 16))))
}

func TestFilter_UnrecognizedDateRangeIsNoOp(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	for _, value := range []string{"", "past_year", "PAST_WEEK", "7"} {
		resolved := Filter{DateRange: value}.Resolve(today)
		assert.Nil(t, resolved.Window, "date_range %q should not produce a window", value)
		assert.True(t, resolved.Matches(expenseOn(NewDate(2019, time.January, 1))))
	}
}

func TestFilter_ExplicitBounds(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	start := NewDate(2024, time.June, 1)
	end := NewDate(2024, time.June, 10)

	onlyStart := Filter{StartDate: &start}.Resolve(today)
	assert.True(t, onlyStart.Matches(expenseOn(start)))
	assert.True(t, onlyStart.Matches(expenseOn(NewDate(2024, time.December, 31))))
	assert.False(t, onlyStart.Matches(expenseOn(NewDate(2024, time.May, 31))))

	onlyEnd := Filter{EndDate: &end}.Resolve(today)
	assert.True(t, onlyEnd.Matches(expenseOn(end)))
	assert.True(t, onlyEnd.Matches(expenseOn(NewDate(2020, time.January, 1))))
	assert.False(t, onlyEnd.Matches(expenseOn(NewDate(2024, time.June, 11))))

	both := Filter{StartDate: &start, EndDate: &end}.Resolve(today)
	assert.True(t, both.Matches(expenseOn(NewDate(2024, time.June, 5))))
	assert.False(t, both.Matches(expenseOn(NewDate(2024, time.June, 11))))
}

func TestFilter_CategorySubstringIsCaseInsensitive(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	groceries := expenseOn(NewDate(2024, time.June, 14))

	assert.True(t, Filter{Category: "GRO"}.Resolve(today).Matches(groceries))
	assert.True(t, Filter{Category: "ceri"}.Resolve(today).Matches(groceries))
	assert.True(t, Filter{Category: "groceries"}.Resolve(today).Matches(groceries))
	assert.False(t, Filter{Category: "health"}.Resolve(today).Matches(groceries))
}

func TestFilter_PredicatesCompose(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	start := NewDate(2024, time.June, 12)

	// past_week window AND start_date AND category must all hold.
	filter := Filter{
		DateRange: DateRangePastWeek,
		StartDate: &start,
		Category:  "groc",
	}
	resolved := filter.Resolve(today)

	assert.True(t, resolved.Matches(expenseOn(NewDate(2024, time.June, 13))))
	// Inside the week window but before start_date.
	assert.False(t, resolved.Matches(expenseOn(NewDate(2024, time.June, 10))))

	leisure := expenseOn(NewDate(2024, time.June, 13))
	leisure.Category = CategoryLeisure
	assert.False(t, resolved.Matches(leisure))
}
