package expenseService

import (
	"ProjectBudget/internal/api/expense"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req expense.CreateExpenseRequest) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	amount, err := entity.NewMoney(req.Amount)
	if err != nil {
		return "", err
	}

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return "", err
	}

	newExpense, err := entity.NewExpense(id, userID, req.CategoryID, req.Memo, amount, req.ExpenseAt, now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
		}).Warn("Expense rejected")
		return "", err
	}
	newExpense.ExcludeFromTotal = req.ExcludeFromTotal

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return "", err
	}

	if err := repo.Expenses.CreateExpense(ctx, newExpense); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": id,
	}).Info("Expense created")

	return id, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID string, expenseID string) (expense.ExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.ExpenseResponse{}, err
	}

	found, err := s.loadOwnedExpense(ctx, repo.Expenses.GetExpenseByID, userID, expenseID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	return makeExpenseResponse(found), nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if _, err := s.loadOwnedExpense(ctx, repo.Expenses.GetExpenseByID, userID, expenseID); err != nil {
		return err
	}

	if err := repo.Expenses.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense deletion")
		return err
	}

	return nil
}

func (s *expenseService) loadOwnedExpense(
	ctx context.Context,
	get func(ctx context.Context, id string) (entity.Expense, error),
	userID string,
	expenseID string,
) (entity.Expense, error) {
	found, err := get(ctx, expenseID)
	if err != nil {
		return entity.Expense{}, err
	}

	if !found.IsOwnedBy(userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"expense_id": expenseID,
			"user_id":    userID,
		}).Warn("Expense accessed by non owner")
		return entity.Expense{}, expense.ErrNoPermission
	}

	return found, nil
}

func makeExpenseResponse(e entity.Expense) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:               e.ID,
		CategoryID:       e.CategoryID,
		Memo:             e.Memo,
		Amount:           e.Amount.Amount(),
		ExpenseAt:        e.ExpenseAt,
		ExcludeFromTotal: e.ExcludeFromTotal,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
