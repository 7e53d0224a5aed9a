package expenseRepository

import (
	"ProjectBudget/internal/api/expense"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ExpenseDB struct {
	ID               sql.NullString `db:"id"`
	UserID           sql.NullString `db:"user_id"`
	CategoryID       sql.NullInt64  `db:"category_id"`
	Memo             sql.NullString `db:"memo"`
	Amount           sql.NullInt64  `db:"amount"`
	ExpenseAt        sql.NullTime   `db:"expense_at"`
	ExcludeFromTotal sql.NullBool   `db:"exclude_from_total"`
	CreatedAt        sql.NullTime   `db:"created_at"`
	UpdatedAt        sql.NullTime   `db:"updated_at"`
}

func (r *expenseRepository) CreateExpense(c context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                 e.ID,
		"user_id":            e.UserID,
		"category_id":        e.CategoryID,
		"memo":               e.Memo,
		"amount":             e.Amount.Amount(),
		"expense_at":         e.ExpenseAt,
		"exclude_from_total": e.ExcludeFromTotal,
		"created_at":         e.CreatedAt,
		"updated_at":         e.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return err
	}

	return nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryGetExpenseByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}
	query = r.q.Rebind(query)

	var row ExpenseDB
	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
			}).Warn("Expense not found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row)
}

func (r *expenseRepository) DeleteExpense(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteExpense, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense execution err")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) makeExpense(row ExpenseDB) (entity.Expense, error) {
	amount, err := entity.NewMoney(row.Amount.Int64)
	if err != nil {
		return entity.Expense{}, err
	}

	return entity.Expense{
		ID:               row.ID.String,
		UserID:           row.UserID.String,
		CategoryID:       row.CategoryID.Int64,
		Memo:             row.Memo.String,
		Amount:           amount,
		ExpenseAt:        nullTime(row.ExpenseAt),
		ExcludeFromTotal: row.ExcludeFromTotal.Bool,
		CreatedAt:        nullTime(row.CreatedAt),
		UpdatedAt:        nullTime(row.UpdatedAt),
	}, nil
}

func nullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
