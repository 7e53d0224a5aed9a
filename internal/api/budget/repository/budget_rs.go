package budgetRepository

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type BudgetDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	BudgetMonth sql.NullTime   `db:"budget_month"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

type CategoryBudgetDB struct {
	ID         sql.NullString `db:"id"`
	BudgetID   sql.NullString `db:"budget_id"`
	CategoryID sql.NullInt64  `db:"category_id"`
	Amount     sql.NullInt64  `db:"amount"`
	CreatedAt  sql.NullTime   `db:"created_at"`
	UpdatedAt  sql.NullTime   `db:"updated_at"`
}

func (r *budgetRepository) CreateBudget(c context.Context, b entity.Budget) error {
	argsKV := map[string]interface{}{
		"id":           b.ID,
		"user_id":      b.UserID,
		"budget_month": b.YearMonth.Time(),
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}

	if _, err := r.exec(c, queryCreateBudget, argsKV, "CreateBudget"); err != nil {
		return err
	}

	for _, cb := range b.CategoryBudgets {
		if err := r.InsertCategoryBudget(c, cb); err != nil {
			return err
		}
	}

	return nil
}

func (r *budgetRepository) GetBudgetByID(c context.Context, id string, forUpdate bool) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)

	namedQuery := queryGetBudgetByID
	if forUpdate {
		namedQuery = queryGetBudgetByIDForUpdate
	}

	query, args, err := sqlx.Named(namedQuery, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID named query preparation err")
		return entity.Budget{}, err
	}
	query = r.q.Rebind(query)

	var row BudgetDB
	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  id,
			}).Warn("Budget not found")
			return entity.Budget{}, budget.ErrBudgetNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID execution err")
		return entity.Budget{}, err
	}

	categories, err := r.selectCategoryBudgets(c, queryGetCategoryBudgetsByBudgetID,
		map[string]interface{}{"budget_id": id}, "GetBudgetByID")
	if err != nil {
		return entity.Budget{}, err
	}

	return r.makeBudget(row, categories), nil
}

func (r *budgetRepository) GetCategoryBudgetsByMonth(c context.Context, userID string, month time.Time) ([]entity.CategoryBudget, error) {
	return r.selectCategoryBudgets(c, queryGetCategoryBudgetsByMonth, map[string]interface{}{
		"user_id":      userID,
		"budget_month": month,
	}, "GetCategoryBudgetsByMonth")
}

func (r *budgetRepository) InsertCategoryBudget(c context.Context, cb entity.CategoryBudget) error {
	argsKV := map[string]interface{}{
		"id":          cb.ID,
		"budget_id":   cb.BudgetID,
		"category_id": cb.CategoryID,
		"amount":      cb.Amount.Amount(),
		"created_at":  cb.CreatedAt,
		"updated_at":  cb.UpdatedAt,
	}

	_, err := r.exec(c, queryCreateCategoryBudget, argsKV, "InsertCategoryBudget")
	return err
}

func (r *budgetRepository) UpdateCategoryBudget(c context.Context, cb entity.CategoryBudget) error {
	argsKV := map[string]interface{}{
		"budget_id":   cb.BudgetID,
		"category_id": cb.CategoryID,
		"amount":      cb.Amount.Amount(),
		"updated_at":  cb.UpdatedAt,
	}

	res, err := r.exec(c, queryUpdateCategoryBudget, argsKV, "UpdateCategoryBudget")
	if err != nil {
		return err
	}

	return r.expectAffected(c, res, budget.ErrBudgetCategoryNotFound, "UpdateCategoryBudget")
}

func (r *budgetRepository) DeleteCategoryBudget(c context.Context, budgetID string, categoryID int64) error {
	argsKV := map[string]interface{}{
		"budget_id":   budgetID,
		"category_id": categoryID,
	}

	res, err := r.exec(c, queryDeleteCategoryBudget, argsKV, "DeleteCategoryBudget")
	if err != nil {
		return err
	}

	return r.expectAffected(c, res, budget.ErrBudgetCategoryNotFound, "DeleteCategoryBudget")
}

func (r *budgetRepository) DeleteBudget(c context.Context, id string) error {
	res, err := r.exec(c, queryDeleteBudget, map[string]interface{}{"id": id}, "DeleteBudget")
	if err != nil {
		return err
	}

	return r.expectAffected(c, res, budget.ErrBudgetNotFound, "DeleteBudget")
}

func (r *budgetRepository) exec(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) (sql.Result, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"constraint": pqErr.Constraint,
			}).Warn(op + " unique violation")
			return nil, budget.ErrBudgetCategoryDuplicated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	return res, nil
}

func (r *budgetRepository) expectAffected(c context.Context, res sql.Result, notFound error, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return err
	}

	if affected == 0 {
		return notFound
	}
	return nil
}

func (r *budgetRepository) selectCategoryBudgets(c context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.CategoryBudget, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []CategoryBudgetDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " category budgets select err")
		return nil, err
	}

	categories := make([]entity.CategoryBudget, 0, len(rows))
	for _, row := range rows {
		cb, err := r.makeCategoryBudget(row)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
				"id":         row.ID.String,
			}).Error(op + " stored category budget is invalid")
			return nil, err
		}
		categories = append(categories, cb)
	}

	return categories, nil
}

func (r *budgetRepository) makeBudget(row BudgetDB, categories []entity.CategoryBudget) entity.Budget {
	return entity.Budget{
		ID:              row.ID.String,
		UserID:          row.UserID.String,
		YearMonth:       entity.BudgetYearMonthOf(nullTime(row.BudgetMonth)),
		CategoryBudgets: categories,
		CreatedAt:       nullTime(row.CreatedAt),
		UpdatedAt:       nullTime(row.UpdatedAt),
	}
}

func (r *budgetRepository) makeCategoryBudget(row CategoryBudgetDB) (entity.CategoryBudget, error) {
	amount, err := entity.NewMoney(row.Amount.Int64)
	if err != nil {
		return entity.CategoryBudget{}, err
	}

	return entity.CategoryBudget{
		ID:         row.ID.String,
		BudgetID:   row.BudgetID.String,
		CategoryID: row.CategoryID.Int64,
		Amount:     amount,
		CreatedAt:  nullTime(row.CreatedAt),
		UpdatedAt:  nullTime(row.UpdatedAt),
	}, nil
}

func nullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
