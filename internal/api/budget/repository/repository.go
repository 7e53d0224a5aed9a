package budgetRepository

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
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
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
		Budgets:  &budgetRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Budgets interface {
		CreateBudget(ctx context.Context, budget entity.Budget) error
		// GetBudgetByID loads the budget with its categories. forUpdate locks
		// the budget row until the surrounding transaction ends.
		GetBudgetByID(ctx context.Context, id string, forUpdate bool) (entity.Budget, error)
		GetCategoryBudgetsByMonth(ctx context.Context, userID string, month time.Time) ([]entity.CategoryBudget, error)
		InsertCategoryBudget(ctx context.Context, categoryBudget entity.CategoryBudget) error
		UpdateCategoryBudget(ctx context.Context, categoryBudget entity.CategoryBudget) error
		DeleteCategoryBudget(ctx context.Context, budgetID string, categoryID int64) error
		DeleteBudget(ctx context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type budgetRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
