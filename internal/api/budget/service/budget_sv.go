package budgetService

import (
	"ProjectBudget/internal/api/auth"
	"ProjectBudget/internal/api/budget"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/redis"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req budget.CreateBudgetRequest) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	yearMonth, err := entity.ParseBudgetYearMonth(req.Month)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"month":      req.Month,
		}).Warn("Invalid budget month")
		return "", err
	}

	if len(req.BudgetByCategories) == 0 {
		return "", budget.ErrInvalidBudget
	}

	if err := s.ensureUserExists(ctx, userID); err != nil {
		return "", err
	}

	now := s.now()
	budgetID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return "", err
	}

	newBudget, err := entity.NewBudget(budgetID, yearMonth, now)
	if err != nil {
		return "", err
	}
	if err := newBudget.SetOwner(userID); err != nil {
		return "", err
	}

	categories := make([]entity.CategoryBudget, 0, len(req.BudgetByCategories))
	for _, item := range req.BudgetByCategories {
		cb, err := s.newCategoryBudget(item.CategoryID, item.Money)
		if err != nil {
			return "", err
		}
		categories = append(categories, cb)
	}

	if err := newBudget.SetInitialCategories(categories); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
		}).Warn("Budget categories rejected")
		return "", err
	}

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return "", err
	}
	defer repo.Rollback()

	if err := repo.Budgets.CreateBudget(ctx, newBudget); err != nil {
		return "", err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget creation")
		return "", err
	}

	s.invalidateMonth(ctx, userID, yearMonth)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"budget_id":  budgetID,
		"month":      yearMonth.String(),
	}).Info("Budget created")

	return budgetID, nil
}

func (s *budgetService) GetBudget(ctx context.Context, userID string, budgetID string) (budget.BudgetResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return budget.BudgetResponse{}, err
	}

	found, err := s.loadOwnedBudget(ctx, repo, userID, budgetID, false)
	if err != nil {
		return budget.BudgetResponse{}, err
	}

	return makeBudgetResponse(found), nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	return s.mutate(ctx, userID, budgetID, "DeleteBudget", func(repo budgetRepository.Client, b *entity.Budget) error {
		return repo.Budgets.DeleteBudget(ctx, b.ID)
	})
}

func (s *budgetService) AddBudgetCategory(ctx context.Context, userID string, budgetID string, req budget.AddCategoryRequest) (budget.CategoryBudgetResponse, error) {
	cb, err := s.newCategoryBudget(req.CategoryID, req.Money)
	if err != nil {
		return budget.CategoryBudgetResponse{}, err
	}

	var added entity.CategoryBudget
	err = s.mutate(ctx, userID, budgetID, "AddBudgetCategory", func(repo budgetRepository.Client, b *entity.Budget) error {
		inserted, err := b.AddCategory(cb)
		if err != nil {
			return err
		}
		added = inserted
		return repo.Budgets.InsertCategoryBudget(ctx, inserted)
	})
	if err != nil {
		return budget.CategoryBudgetResponse{}, err
	}

	return makeCategoryBudgetResponse(added), nil
}

func (s *budgetService) ModifyBudgetCategory(ctx context.Context, userID string, budgetID string, categoryID int64, req budget.ModifyCategoryRequest) error {
	amount, err := entity.NewMoney(req.Money)
	if err != nil {
		return err
	}

	return s.mutate(ctx, userID, budgetID, "ModifyBudgetCategory", func(repo budgetRepository.Client, b *entity.Budget) error {
		modified, err := b.ModifyCategory(categoryID, amount, s.now())
		if err != nil {
			return err
		}
		return repo.Budgets.UpdateCategoryBudget(ctx, modified)
	})
}

func (s *budgetService) RemoveBudgetCategory(ctx context.Context, userID string, budgetID string, categoryID int64) error {
	return s.mutate(ctx, userID, budgetID, "RemoveBudgetCategory", func(repo budgetRepository.Client, b *entity.Budget) error {
		removed, err := b.RemoveCategory(categoryID)
		if err != nil {
			return err
		}
		return repo.Budgets.DeleteCategoryBudget(ctx, b.ID, removed.CategoryID)
	})
}

// mutate runs fn inside one transaction with the budget row locked and the
// caller's ownership verified. The month cache entry is dropped after commit.
func (s *budgetService) mutate(
	ctx context.Context,
	userID string,
	budgetID string,
	op string,
	fn func(repo budgetRepository.Client, b *entity.Budget) error,
) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	locked, err := s.loadOwnedBudget(ctx, repo, userID, budgetID, true)
	if err != nil {
		return err
	}

	if err := fn(repo, &locked); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  budgetID,
			"error":      err.Error(),
		}).Warn(op + " rejected")
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " commit failed")
		return err
	}

	s.invalidateMonth(ctx, userID, locked.YearMonth)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  budgetID,
	}).Info(op + " succeeded")

	return nil
}

func (s *budgetService) loadOwnedBudget(
	ctx context.Context,
	repo budgetRepository.Client,
	userID string,
	budgetID string,
	forUpdate bool,
) (entity.Budget, error) {
	found, err := repo.Budgets.GetBudgetByID(ctx, budgetID, forUpdate)
	if err != nil {
		return entity.Budget{}, err
	}

	if !found.IsOwnedBy(userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"budget_id":  budgetID,
			"user_id":    userID,
		}).Warn("Budget accessed by non owner")
		return entity.Budget{}, budget.ErrNoPermission
	}

	return found, nil
}

func (s *budgetService) ensureUserExists(ctx context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth repository client")
		return err
	}

	exists, err := repo.Users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
		}).Warn("Budget requested for unknown user")
		return auth.ErrUserNotFound
	}

	return nil
}

func (s *budgetService) newCategoryBudget(categoryID int64, money int64) (entity.CategoryBudget, error) {
	amount, err := entity.NewMoney(money)
	if err != nil {
		return entity.CategoryBudget{}, err
	}

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return entity.CategoryBudget{}, err
	}

	return entity.NewCategoryBudget(id, categoryID, amount, now)
}

func (s *budgetService) invalidateMonth(ctx context.Context, userID string, yearMonth entity.BudgetYearMonth) {
	if s.cache == nil {
		return
	}

	key := redis.MonthlyBudgetKey(userID, yearMonth.String())
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Warn("Failed to invalidate monthly budget cache")
	}
}

func makeBudgetResponse(b entity.Budget) budget.BudgetResponse {
	categories := make([]budget.CategoryBudgetResponse, 0, len(b.CategoryBudgets))
	for _, cb := range b.CategoryBudgets {
		categories = append(categories, makeCategoryBudgetResponse(cb))
	}

	return budget.BudgetResponse{
		ID:                 b.ID,
		Month:              b.YearMonth.String(),
		TotalMoney:         b.TotalAmount(),
		BudgetByCategories: categories,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func makeCategoryBudgetResponse(cb entity.CategoryBudget) budget.CategoryBudgetResponse {
	return budget.CategoryBudgetResponse{
		ID:         cb.ID,
		CategoryID: cb.CategoryID,
		Money:      cb.Amount.Amount(),
		CreatedAt:  cb.CreatedAt,
		UpdatedAt:  cb.UpdatedAt,
	}
}
