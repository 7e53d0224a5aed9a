package entity

import (
	"ProjectBudget/internal/api/expense"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 10

	searchDateLayout = "2006-01-02"
)

var searchDatePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[1-2][0-9]|3[0-1])$`)

type SearchSort string

const (
	SortByExpenseDate SearchSort = "expense_date"
	SortByCreated     SearchSort = "created"
	SortByAmount      SearchSort = "amount"
)

// ParseSearchSort is case-insensitive and falls back to SortByExpenseDate.
func ParseSearchSort(raw string) SearchSort {
	switch s := SearchSort(strings.ToLower(strings.TrimSpace(raw))); s {
	case SortByCreated, SortByAmount, SortByExpenseDate:
		return s
	default:
		return SortByExpenseDate
	}
}

type SearchOrder string

const (
	OrderAsc  SearchOrder = "asc"
	OrderDesc SearchOrder = "desc"
)

// ParseSearchOrder is case-insensitive and falls back to OrderDesc.
func ParseSearchOrder(raw string) SearchOrder {
	if SearchOrder(strings.ToLower(strings.TrimSpace(raw))) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// ExpenseSearchParams is the raw, unvalidated search input. Nil means absent.
type ExpenseSearchParams struct {
	Start       *string
	End         *string
	Min         *int64
	Max         *int64
	CategoryIDs []int64
	Page        *int
	Size        *int
	Sort        string
	Order       string
}

// ExpenseSearchCondition is a normalized search. Start and End are both
// start-of-day instants; Min and Max are nil when not filtered.
type ExpenseSearchCondition struct {
	Start       time.Time
	End         time.Time
	Min         *Money
	Max         *Money
	CategoryIDs []int64
	Page        int
	Size        int
	Sort        SearchSort
	Order       SearchOrder
}

// NewExpenseSearchCondition validates and defaults p. A requested size above
// DefaultPageSize is not an error: the default is used instead, so callers
// asking for 50 rows get 10.
func NewExpenseSearchCondition(p ExpenseSearchParams) (ExpenseSearchCondition, error) {
	if p.Start == nil || p.End == nil {
		return ExpenseSearchCondition{}, expense.ErrDateRequired
	}

	start, err := parseSearchDate(*p.Start)
	if err != nil {
		return ExpenseSearchCondition{}, err
	}
	end, err := parseSearchDate(*p.End)
	if err != nil {
		return ExpenseSearchCondition{}, err
	}

	cond := ExpenseSearchCondition{
		Start:       start,
		End:         end,
		CategoryIDs: []int64{},
		Page:        DefaultPage,
		Size:        DefaultPageSize,
		Sort:        ParseSearchSort(p.Sort),
		Order:       ParseSearchOrder(p.Order),
	}

	if p.Min != nil {
		m, err := NewMoney(*p.Min)
		if err != nil {
			return ExpenseSearchCondition{}, err
		}
		cond.Min = &m
	}
	if p.Max != nil {
		m, err := NewMoney(*p.Max)
		if err != nil {
			return ExpenseSearchCondition{}, err
		}
		cond.Max = &m
	}

	if len(p.CategoryIDs) > 0 {
		cond.CategoryIDs = append(cond.CategoryIDs, p.CategoryIDs...)
	}

	if p.Page != nil && *p.Page >= DefaultPage {
		cond.Page = *p.Page
	}
	if p.Size != nil && *p.Size > 0 && *p.Size <= DefaultPageSize {
		cond.Size = *p.Size
	}

	return cond, nil
}

func parseSearchDate(raw string) (time.Time, error) {
	if !searchDatePattern.MatchString(raw) {
		return time.Time{}, expense.ErrInvalidDateFormat
	}

	t, err := time.ParseInLocation(searchDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, expense.ErrInvalidDateFormat
	}
	return t, nil
}

func (c ExpenseSearchCondition) Offset() int {
	return c.Page * c.Size
}

func (c ExpenseSearchCondition) Limit() int {
	return c.Size
}
