package expenseService

import (
	"ProjectBudget/internal/api/expense"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/redis"
	"ProjectBudget/pkg/utils"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type cachedCategoryBudget struct {
	ID         string `json:"id"`
	BudgetID   string `json:"budget_id"`
	CategoryID int64  `json:"category_id"`
	Amount     int64  `json:"amount"`
}

// GetTodayReport compares today's spending per category with a thirtieth of
// this month's category budgets. Both reads use the service clock.
func (s *expenseService) GetTodayReport(ctx context.Context, userID string) (expense.TodayReportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now()

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.TodayReportResponse{}, err
	}

	today, err := repo.Expenses.TodayExpensesPerCategory(ctx, userID, utils.StartOfDay(now), utils.EndOfDay(now))
	if err != nil {
		return expense.TodayReportResponse{}, err
	}

	budgets, err := s.monthlyCategoryBudgets(ctx, userID, entity.BudgetYearMonthOf(now))
	if err != nil {
		return expense.TodayReportResponse{}, err
	}

	report := entity.NewTodayExpenseReport(today, budgets)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"has_budget": report.HasBudget,
	}).Debug("Today report built")

	return makeTodayReportResponse(report), nil
}

func (s *expenseService) monthlyCategoryBudgets(ctx context.Context, userID string, yearMonth entity.BudgetYearMonth) ([]entity.CategoryBudget, error) {
	requestID := contextPkg.GetRequestID(ctx)
	key := redis.MonthlyBudgetKey(userID, yearMonth.String())

	if s.cache != nil {
		var cached []cachedCategoryBudget
		err := s.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			budgets, convErr := fromCache(cached)
			if convErr == nil {
				return budgets, nil
			}
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      convErr.Error(),
			}).Warn("Discarding invalid monthly budget cache entry")
		case !errors.Is(err, redis.ErrCacheMiss):
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Warn("Monthly budget cache read failed")
		}
	}

	version, cacheWritable := int64(0), false
	if s.cache != nil {
		v, err := s.cache.Version(ctx, key)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Warn("Monthly budget cache version read failed")
		} else {
			version, cacheWritable = v, true
		}
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create budget repository client")
		return nil, err
	}

	budgets, err := repo.Budgets.GetCategoryBudgetsByMonth(ctx, userID, yearMonth.Time())
	if err != nil {
		return nil, err
	}

	if cacheWritable {
		err := s.cache.SetJSONIfVersion(ctx, key, toCache(budgets), s.cacheTTL, version)
		switch {
		case errors.Is(err, redis.ErrVersionChanged):
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
			}).Debug("Monthly budgets changed during read, not caching")
		case err != nil:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Warn("Monthly budget cache write failed")
		}
	}

	return budgets, nil
}

func toCache(budgets []entity.CategoryBudget) []cachedCategoryBudget {
	out := make([]cachedCategoryBudget, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, cachedCategoryBudget{
			ID:         b.ID,
			BudgetID:   b.BudgetID,
			CategoryID: b.CategoryID,
			Amount:     b.Amount.Amount(),
		})
	}
	return out
}

func fromCache(cached []cachedCategoryBudget) ([]entity.CategoryBudget, error) {
	out := make([]entity.CategoryBudget, 0, len(cached))
	for _, c := range cached {
		amount, err := entity.NewMoney(c.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.CategoryBudget{
			ID:         c.ID,
			BudgetID:   c.BudgetID,
			CategoryID: c.CategoryID,
			Amount:     amount,
		})
	}
	return out, nil
}

func makeTodayReportResponse(report entity.TodayExpenseReport) expense.TodayReportResponse {
	rows := make([]expense.TodayCategoryResponse, 0, len(report.ExpensesPerCategory))
	for _, row := range report.ExpensesPerCategory {
		rows = append(rows, expense.TodayCategoryResponse{
			CategoryID:        row.CategoryID,
			PaidAmount:        row.PaidAmount,
			AvailableAmount:   row.AvailableAmount,
			DangerPercent:     row.DangerPercent,
			HasCategoryBudget: row.HasCategoryBudget,
		})
	}

	return expense.TodayReportResponse{
		ExpensesPerCategory: rows,
		TotalExpenseAmount:  report.TotalExpenseAmount,
		HasBudget:           report.HasBudget,
		BudgetAmount:        report.BudgetAmount,
		DangerPercent:       report.DangerPercent,
	}
}

