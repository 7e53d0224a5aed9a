package expenseService

import (
	"ProjectBudget/internal/api/expense"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *expenseService) SearchExpenses(ctx context.Context, userID string, params entity.ExpenseSearchParams) (expense.SearchExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cond, err := entity.NewExpenseSearchCondition(params)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense search")
		return expense.SearchExpenseResponse{}, err
	}

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.SearchExpenseResponse{}, err
	}

	page, total, err := repo.Expenses.SearchExpenses(ctx, userID, cond)
	if err != nil {
		return expense.SearchExpenseResponse{}, err
	}

	sums, err := repo.Expenses.SumExpensesByCategory(ctx, userID, cond)
	if err != nil {
		return expense.SearchExpenseResponse{}, err
	}

	result := entity.NewExpenseSearchResult(cond, page, total, sums)

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"total_count": result.TotalCount,
		"page":        cond.Page,
	}).Debug("Expense search finished")

	return makeSearchResponse(cond, result), nil
}

func makeSearchResponse(cond entity.ExpenseSearchCondition, result entity.ExpenseSearchResult) expense.SearchExpenseResponse {
	expenses := make([]expense.ExpenseResponse, 0, len(result.Expenses))
	for _, e := range result.Expenses {
		expenses = append(expenses, makeExpenseResponse(e))
	}

	sums := make([]expense.CategorySumResponse, 0, len(result.CategorySums))
	for _, sum := range result.CategorySums {
		sums = append(sums, expense.CategorySumResponse{
			CategoryID:  sum.CategoryID,
			TotalAmount: sum.TotalAmount,
		})
	}

	return expense.SearchExpenseResponse{
		Expenses:         expenses,
		CategorySums:     sums,
		TotalExpenditure: result.TotalExpenditure,
		TotalCount:       result.TotalCount,
		Page:             cond.Page,
		Size:             cond.Size,
		IsLastPage:       result.IsLastPage,
	}
}
