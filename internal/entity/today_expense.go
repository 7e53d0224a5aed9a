package entity

import "math"

const (
	// DangerPercentUnbounded is reported when money was spent against a daily
	// allowance that truncates to zero.
	DangerPercentUnbounded int64 = math.MaxInt32

	budgetDaysPerMonth = 30
)

type TodayExpensePerCategory struct {
	CategoryID        int64
	PaidAmount        int64
	AvailableAmount   *int64
	DangerPercent     *int64
	HasCategoryBudget bool
}

type TodayExpenseReport struct {
	ExpensesPerCategory []TodayExpensePerCategory
	TotalExpenseAmount  int64
	HasBudget           bool
	BudgetAmount        int64
	DangerPercent       *int64
}

// DangerPercent compares paid against a thirtieth of monthlyBudget, truncating
// at every division.
func DangerPercent(paid int64, monthlyBudget int64) int64 {
	daily := monthlyBudget / budgetDaysPerMonth
	if daily == 0 {
		if paid == 0 {
			return 0
		}
		return DangerPercentUnbounded
	}
	return (paid / daily) * 100
}

// NewTodayExpenseReport joins today's per-category totals with this month's
// category budgets. Rows without a budget pass through untouched; the overall
// budget amount counts every budget, matched or not.
func NewTodayExpenseReport(today []TodayExpensePerCategory, budgets []CategoryBudget) TodayExpenseReport {
	rows := make([]TodayExpensePerCategory, 0, len(today))
	var total int64

	for _, row := range today {
		total += row.PaidAmount

		if len(budgets) > 0 {
			row = withCategoryBudget(row, budgets)
		}
		rows = append(rows, row)
	}

	report := TodayExpenseReport{
		ExpensesPerCategory: rows,
		TotalExpenseAmount:  total,
	}
	if len(budgets) == 0 {
		return report
	}

	var budgetSum int64
	for _, b := range budgets {
		budgetSum += b.Amount.Amount()
	}

	danger := DangerPercent(total, budgetSum)
	report.HasBudget = true
	report.BudgetAmount = budgetSum
	report.DangerPercent = &danger
	return report
}

func withCategoryBudget(row TodayExpensePerCategory, budgets []CategoryBudget) TodayExpensePerCategory {
	for _, b := range budgets {
		if b.CategoryID != row.CategoryID {
			continue
		}

		available := b.Amount.Amount()
		danger := DangerPercent(row.PaidAmount, available)
		row.AvailableAmount = &available
		row.DangerPercent = &danger
		row.HasCategoryBudget = true
		return row
	}
	return row
}
