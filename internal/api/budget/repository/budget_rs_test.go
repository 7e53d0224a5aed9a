package budgetRepository

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	testMonth = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	budgetColumns   = []string{"id", "user_id", "budget_month", "created_at", "updated_at"}
	categoryColumns = []string{"id", "budget_id", "category_id", "amount", "created_at", "updated_at"}
)

func newMockClient(t *testing.T) (Client, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := New(sqlx.NewDb(mockDB, "postgres"), logger).NewClient(false)
	require.NoError(t, err)
	return client, mock
}

func money(t *testing.T, amount int64) entity.Money {
	t.Helper()
	m, err := entity.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func TestCreateBudget(t *testing.T) {
	client, mock := newMockClient(t)

	b := entity.Budget{
		ID:        "budget-1",
		UserID:    "user-1",
		YearMonth: entity.BudgetYearMonthOf(testMonth),
		CreatedAt: testNow,
		UpdatedAt: testNow,
		CategoryBudgets: []entity.CategoryBudget{
			{ID: "cb-1", BudgetID: "budget-1", CategoryID: 1, Amount: money(t, 300000), CreatedAt: testNow, UpdatedAt: testNow},
			{ID: "cb-2", BudgetID: "budget-1", CategoryID: 2, Amount: money(t, 150000), CreatedAt: testNow, UpdatedAt: testNow},
		},
	}

	mock.ExpectExec(`INSERT INTO budgets`).
		WithArgs("budget-1", "user-1", testMonth, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO category_budgets`).
		WithArgs("cb-1", "budget-1", int64(1), int64(300000), testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO category_budgets`).
		WithArgs("cb-2", "budget-1", int64(2), int64(150000), testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, client.Budgets.CreateBudget(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBudgetByIDForUpdate(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM budgets\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("budget-1").
		WillReturnRows(sqlmock.NewRows(budgetColumns).
			AddRow("budget-1", "user-1", testMonth, testNow, testNow))
	mock.ExpectQuery(`FROM category_budgets\s+WHERE budget_id = \$1`).
		WithArgs("budget-1").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow("cb-1", "budget-1", int64(1), int64(300000), testNow, testNow).
			AddRow("cb-2", "budget-1", int64(2), int64(150000), testNow, testNow))

	b, err := client.Budgets.GetBudgetByID(context.Background(), "budget-1", true)
	require.NoError(t, err)

	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, "2024-03", b.YearMonth.String())
	require.Len(t, b.CategoryBudgets, 2)
	assert.Equal(t, int64(450000), b.TotalAmount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBudgetByIDWithoutLock(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM budgets\s+WHERE id = \$1\s*$`).
		WithArgs("budget-1").
		WillReturnRows(sqlmock.NewRows(budgetColumns).
			AddRow("budget-1", "user-1", testMonth, testNow, testNow))
	mock.ExpectQuery(`FROM category_budgets`).
		WithArgs("budget-1").
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	b, err := client.Budgets.GetBudgetByID(context.Background(), "budget-1", false)
	require.NoError(t, err)
	assert.Empty(t, b.CategoryBudgets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBudgetByIDNotFound(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`FROM budgets`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(budgetColumns))

	_, err := client.Budgets.GetBudgetByID(context.Background(), "missing", false)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestGetCategoryBudgetsByMonth(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`JOIN budgets b ON b.id = cb.budget_id`).
		WithArgs("user-1", testMonth).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow("cb-1", "budget-1", int64(1), int64(300000), testNow, testNow))

	list, err := client.Budgets.GetCategoryBudgetsByMonth(context.Background(), "user-1", testMonth)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].CategoryID)
	assert.Equal(t, int64(300000), list[0].Amount.Amount())
}

func TestInsertCategoryBudgetDuplicated(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`INSERT INTO category_budgets`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "category_budgets_budget_category_key"})

	err := client.Budgets.InsertCategoryBudget(context.Background(), entity.CategoryBudget{
		ID: "cb-3", BudgetID: "budget-1", CategoryID: 1, Amount: money(t, 1),
	})
	assert.ErrorIs(t, err, budget.ErrBudgetCategoryDuplicated)
}

func TestUpdateCategoryBudget(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "missing category", affected: 0, wantErr: budget.ErrBudgetCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newMockClient(t)

			mock.ExpectExec(`UPDATE category_budgets`).
				WithArgs(int64(5000), testNow, "budget-1", int64(1)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := client.Budgets.UpdateCategoryBudget(context.Background(), entity.CategoryBudget{
				BudgetID: "budget-1", CategoryID: 1, Amount: money(t, 5000), UpdatedAt: testNow,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDeleteCategoryBudgetNotFound(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`DELETE FROM category_budgets`).
		WithArgs("budget-1", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.Budgets.DeleteCategoryBudget(context.Background(), "budget-1", 9)
	assert.ErrorIs(t, err, budget.ErrBudgetCategoryNotFound)
}

func TestDeleteBudget(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(`DELETE FROM budgets`).
		WithArgs("budget-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, client.Budgets.DeleteBudget(context.Background(), "budget-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBudgetPropagatesDriverError(t *testing.T) {
	client, mock := newMockClient(t)
	driverErr := errors.New("connection refused")

	mock.ExpectExec(`DELETE FROM budgets`).WillReturnError(driverErr)

	err := client.Budgets.DeleteBudget(context.Background(), "budget-1")
	assert.ErrorIs(t, err, driverErr)
}

func TestNewClientWithTransaction(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM budgets`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	client, err := New(sqlx.NewDb(mockDB, "postgres"), logger).NewClient(true)
	require.NoError(t, err)

	require.NoError(t, client.Budgets.DeleteBudget(context.Background(), "budget-1"))
	require.NoError(t, client.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
