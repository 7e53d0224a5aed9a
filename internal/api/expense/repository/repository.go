package expenseRepository

import (
	"ProjectBudget/internal/entity"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
		now: time.Now,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
	now func() time.Time
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Expenses: &expenseRepository{q: sqlExecutor, log: r.log, now: r.now},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Expenses interface {
		CreateExpense(ctx context.Context, expense entity.Expense) error
		GetExpenseByID(ctx context.Context, id string) (entity.Expense, error)
		DeleteExpense(ctx context.Context, id string) error
		SearchExpenses(ctx context.Context, userID string, cond entity.ExpenseSearchCondition) ([]entity.Expense, int64, error)
		SumExpensesByCategory(ctx context.Context, userID string, cond entity.ExpenseSearchCondition) ([]entity.CategoryExpenseSum, error)
		TodayExpensesPerCategory(ctx context.Context, userID string, from time.Time, to time.Time) ([]entity.TodayExpensePerCategory, error)
	}

	Commit   func() error
	Rollback func() error
}

type expenseRepository struct {
	q   SQLExecutor
	log *logrus.Logger
	now func() time.Time
}
