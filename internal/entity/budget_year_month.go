package entity

import (
	"ProjectBudget/internal/api/budget"
	"regexp"
	"time"
)

const yearMonthLayout = "2006-01"

var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// BudgetYearMonth is a calendar month, always held as the first day of that month in UTC.
type BudgetYearMonth struct {
	month time.Time
}

func ParseBudgetYearMonth(raw string) (BudgetYearMonth, error) {
	if !yearMonthPattern.MatchString(raw) {
		return BudgetYearMonth{}, budget.ErrInvalidBudget
	}

	t, err := time.Parse(yearMonthLayout, raw)
	if err != nil {
		return BudgetYearMonth{}, budget.ErrInvalidBudget
	}
	return BudgetYearMonth{month: t}, nil
}

func BudgetYearMonthOf(t time.Time) BudgetYearMonth {
	y, m, _ := t.Date()
	return BudgetYearMonth{month: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)}
}

func (b BudgetYearMonth) IsEmpty() bool {
	return b.month.IsZero()
}

func (b BudgetYearMonth) Time() time.Time {
	return b.month
}

func (b BudgetYearMonth) String() string {
	if b.IsEmpty() {
		return ""
	}
	return b.month.Format(yearMonthLayout)
}
