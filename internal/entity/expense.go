package entity

import (
	"ProjectBudget/internal/api/expense"
	"time"
)

type Expense struct {
	ID               string
	UserID           string
	CategoryID       int64
	Memo             string
	Amount           Money
	ExpenseAt        time.Time
	ExcludeFromTotal bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewExpense(id string, userID string, categoryID int64, memo string, amount Money, expenseAt time.Time, now time.Time) (Expense, error) {
	if userID == "" || categoryID <= 0 || expenseAt.IsZero() {
		return Expense{}, expense.ErrInvalidExpense
	}

	return Expense{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Memo:       memo,
		Amount:     amount,
		ExpenseAt:  expenseAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (e Expense) IsOwnedBy(userID string) bool {
	return e.UserID != "" && e.UserID == userID
}

// CategoryExpenseSum is the total of the matching expenses of one category.
type CategoryExpenseSum struct {
	CategoryID  int64
	TotalAmount int64
}

// ExpenseSearchResult is one page of a search plus the aggregates over every match.
type ExpenseSearchResult struct {
	Expenses         []Expense
	CategorySums     []CategoryExpenseSum
	TotalExpenditure int64
	TotalCount       int64
	IsLastPage       bool
}

func NewExpenseSearchResult(cond ExpenseSearchCondition, page []Expense, total int64, sums []CategoryExpenseSum) ExpenseSearchResult {
	var expenditure int64
	for _, s := range sums {
		expenditure += s.TotalAmount
	}

	if page == nil {
		page = []Expense{}
	}
	if sums == nil {
		sums = []CategoryExpenseSum{}
	}

	return ExpenseSearchResult{
		Expenses:         page,
		CategorySums:     sums,
		TotalExpenditure: expenditure,
		TotalCount:       total,
		IsLastPage:       int64(cond.Offset()+len(page)) >= total,
	}
}
