package expenseService

import (
	"ProjectBudget/internal/api/expense"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	expenseRepository "ProjectBudget/internal/api/expense/repository"
	"ProjectBudget/internal/entity"
	"ProjectBudget/pkg/redis"
	"ProjectBudget/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, userID string, req expense.CreateExpenseRequest) (string, error)
	GetExpense(ctx context.Context, userID string, expenseID string) (expense.ExpenseResponse, error)
	DeleteExpense(ctx context.Context, userID string, expenseID string) error
	SearchExpenses(ctx context.Context, userID string, params entity.ExpenseSearchParams) (expense.SearchExpenseResponse, error)
	GetTodayReport(ctx context.Context, userID string) (expense.TodayReportResponse, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	budgetRepository  budgetRepository.Repository
	cache             redis.IRedis
	cacheTTL          time.Duration
	utils             utils.IUtils
	now               func() time.Time
}

// New wires the expense service. A nil cache makes the today report read
// monthly budgets straight from the database.
func New(
	log *logrus.Logger,
	expenseRepo expenseRepository.Repository,
	budgetRepo budgetRepository.Repository,
	cache redis.IRedis,
	cacheTTL time.Duration,
	utils utils.IUtils,
) IExpenseService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &expenseService{
		log:               log,
		expenseRepository: expenseRepo,
		budgetRepository:  budgetRepo,
		cache:             cache,
		cacheTTL:          cacheTTL,
		utils:             utils,
		now:               time.Now,
	}
}
