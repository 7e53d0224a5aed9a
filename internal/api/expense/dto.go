package expense

import "time"

type CreateExpenseRequest struct {
	CategoryID       int64     `json:"categoryId" validate:"required,gte=1"`
	Memo             string    `json:"memo" validate:"max=255"`
	Amount           int64     `json:"amount" validate:"gte=1"`
	ExpenseAt        time.Time `json:"expenseAt" validate:"required"`
	ExcludeFromTotal bool      `json:"excludeFromTotal"`
}

type CreateExpenseResponse struct {
	ID string `json:"id"`
}

type ExpenseResponse struct {
	ID               string    `json:"id"`
	CategoryID       int64     `json:"categoryId"`
	Memo             string    `json:"memo"`
	Amount           int64     `json:"amount"`
	ExpenseAt        time.Time `json:"expenseAt"`
	ExcludeFromTotal bool      `json:"excludeFromTotal"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CategorySumResponse struct {
	CategoryID  int64 `json:"categoryId"`
	TotalAmount int64 `json:"totalAmount"`
}

type SearchExpenseResponse struct {
	Expenses         []ExpenseResponse     `json:"expenses"`
	CategorySums     []CategorySumResponse `json:"categorySums"`
	TotalExpenditure int64                 `json:"totalExpenditure"`
	TotalCount       int64                 `json:"totalCount"`
	Page             int                   `json:"page"`
	Size             int                   `json:"size"`
	IsLastPage       bool                  `json:"isLastPage"`
}

type TodayCategoryResponse struct {
	CategoryID        int64  `json:"categoryId"`
	PaidAmount        int64  `json:"paidAmount"`
	AvailableAmount   *int64 `json:"availableAmount,omitempty"`
	DangerPercent     *int64 `json:"dangerPercent,omitempty"`
	HasCategoryBudget bool   `json:"hasCategoryBudget"`
}

type TodayReportResponse struct {
	ExpensesPerCategory []TodayCategoryResponse `json:"expensesPerCategory"`
	TotalExpenseAmount  int64                   `json:"totalExpenseAmount"`
	HasBudget           bool                    `json:"hasBudget"`
	BudgetAmount        int64                   `json:"budgetAmount"`
	DangerPercent       *int64                  `json:"dangerPercent,omitempty"`
}
