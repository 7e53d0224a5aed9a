package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDangerPercent(t *testing.T) {
	tests := []struct {
		name   string
		paid   int64
		budget int64
		want   int64
	}{
		{name: "exactly one daily allowance", paid: 10000, budget: 300000, want: 100},
		{name: "truncates the ratio", paid: 19999, budget: 300000, want: 100},
		{name: "below one allowance", paid: 9999, budget: 300000, want: 0},
		{name: "allowance truncates", paid: 100, budget: 310, want: 1000},
		{name: "zero allowance nothing spent", paid: 0, budget: 29, want: 0},
		{name: "zero allowance some spent", paid: 1, budget: 29, want: DangerPercentUnbounded},
		{name: "zero budget", paid: 500, budget: 0, want: DangerPercentUnbounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DangerPercent(tt.paid, tt.budget))
		})
	}
}

func TestTodayReportWithoutBudget(t *testing.T) {
	today := []TodayExpensePerCategory{
		{CategoryID: 3, PaidAmount: 10000},
		{CategoryID: 4, PaidAmount: 50000},
	}

	report := NewTodayExpenseReport(today, nil)

	assert.False(t, report.HasBudget)
	assert.Equal(t, int64(60000), report.TotalExpenseAmount)
	assert.Zero(t, report.BudgetAmount)
	assert.Nil(t, report.DangerPercent)
	assert.Equal(t, today, report.ExpensesPerCategory)
}

func TestTodayReportPartialOverlap(t *testing.T) {
	today := []TodayExpensePerCategory{
		{CategoryID: 3, PaidAmount: 10000},
		{CategoryID: 4, PaidAmount: 50000},
	}
	budgets := []CategoryBudget{mustCategoryBudget(t, "cb-1", 3, 300000)}

	report := NewTodayExpenseReport(today, budgets)

	require.Len(t, report.ExpensesPerCategory, 2)
	matched := report.ExpensesPerCategory[0]
	assert.True(t, matched.HasCategoryBudget)
	require.NotNil(t, matched.AvailableAmount)
	require.NotNil(t, matched.DangerPercent)
	assert.Equal(t, int64(300000), *matched.AvailableAmount)
	assert.Equal(t, int64(100), *matched.DangerPercent)

	unmatched := report.ExpensesPerCategory[1]
	assert.False(t, unmatched.HasCategoryBudget)
	assert.Nil(t, unmatched.AvailableAmount)
	assert.Nil(t, unmatched.DangerPercent)

	assert.True(t, report.HasBudget)
	assert.Equal(t, int64(60000), report.TotalExpenseAmount)
	assert.Equal(t, int64(300000), report.BudgetAmount)
	require.NotNil(t, report.DangerPercent)
	assert.Equal(t, int64(600), *report.DangerPercent)
}

func TestTodayReportCountsUnmatchedBudgets(t *testing.T) {
	today := []TodayExpensePerCategory{{CategoryID: 1, PaidAmount: 3000}}
	budgets := []CategoryBudget{
		mustCategoryBudget(t, "cb-1", 1, 90000),
		mustCategoryBudget(t, "cb-2", 2, 210000),
	}

	report := NewTodayExpenseReport(today, budgets)

	assert.Equal(t, int64(300000), report.BudgetAmount)
	assert.Equal(t, int64(100), *report.ExpensesPerCategory[0].DangerPercent)
	assert.Equal(t, int64(0), *report.DangerPercent)
}

func TestTodayReportNoSpendingWithBudget(t *testing.T) {
	budgets := []CategoryBudget{mustCategoryBudget(t, "cb-1", 1, 90000)}

	report := NewTodayExpenseReport(nil, budgets)

	assert.True(t, report.HasBudget)
	assert.Empty(t, report.ExpensesPerCategory)
	assert.Zero(t, report.TotalExpenseAmount)
	assert.Equal(t, int64(0), *report.DangerPercent)
}

func TestTodayReportTinyCategoryBudget(t *testing.T) {
	today := []TodayExpensePerCategory{{CategoryID: 1, PaidAmount: 500}}
	budgets := []CategoryBudget{
		mustCategoryBudget(t, "cb-1", 1, 20),
		mustCategoryBudget(t, "cb-2", 2, 300000),
	}

	report := NewTodayExpenseReport(today, budgets)

	assert.Equal(t, DangerPercentUnbounded, *report.ExpensesPerCategory[0].DangerPercent)
	assert.Equal(t, int64(0), *report.DangerPercent)
}
