package budgetService

import (
	"ProjectBudget/internal/api/budget"
	authRepository "ProjectBudget/internal/api/auth/repository"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	"ProjectBudget/pkg/redis"
	"ProjectBudget/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IBudgetService interface {
	CreateBudget(ctx context.Context, userID string, req budget.CreateBudgetRequest) (string, error)
	GetBudget(ctx context.Context, userID string, budgetID string) (budget.BudgetResponse, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
	AddBudgetCategory(ctx context.Context, userID string, budgetID string, req budget.AddCategoryRequest) (budget.CategoryBudgetResponse, error)
	ModifyBudgetCategory(ctx context.Context, userID string, budgetID string, categoryID int64, req budget.ModifyCategoryRequest) error
	RemoveBudgetCategory(ctx context.Context, userID string, budgetID string, categoryID int64) error
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	authRepository   authRepository.Repository
	cache            redis.IRedis
	utils            utils.IUtils
	now              func() time.Time
}

// New wires the budget service. cache may be nil, in which case no
// monthly budget cache entries are invalidated.
func New(
	log *logrus.Logger,
	budgetRepo budgetRepository.Repository,
	authRepo authRepository.Repository,
	cache redis.IRedis,
	utils utils.IUtils,
) IBudgetService {
	return &budgetService{
		log:              log,
		budgetRepository: budgetRepo,
		authRepository:   authRepo,
		cache:            cache,
		utils:            utils,
		now:              time.Now,
	}
}
