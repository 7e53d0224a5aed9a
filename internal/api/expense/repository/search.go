package expenseRepository

import (
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// searchPredicate composes the expense filter. Only the owner clause is
// mandatory; every other clause is added when its input is present.
// When a date bound is missing: end only means before end, start only means
// after start, neither means the last month up to now.
func searchPredicate(userID string, cond entity.ExpenseSearchCondition, now time.Time) squirrel.And {
	pred := squirrel.And{squirrel.Eq{"user_id": userID}}

	switch {
	case cond.Min != nil && cond.Max != nil:
		pred = append(pred, squirrel.Expr("amount BETWEEN ? AND ?", cond.Min.Amount(), cond.Max.Amount()))
	case cond.Min != nil:
		pred = append(pred, squirrel.GtOrEq{"amount": cond.Min.Amount()})
	case cond.Max != nil:
		pred = append(pred, squirrel.LtOrEq{"amount": cond.Max.Amount()})
	}

	if len(cond.CategoryIDs) > 0 {
		pred = append(pred, squirrel.Eq{"category_id": cond.CategoryIDs})
	}

	hasStart, hasEnd := !cond.Start.IsZero(), !cond.End.IsZero()
	switch {
	case hasStart && hasEnd:
		pred = append(pred, squirrel.Expr("expense_at BETWEEN ? AND ?", cond.Start, cond.End))
	case hasEnd:
		pred = append(pred, squirrel.Lt{"expense_at": cond.End})
	case hasStart:
		pred = append(pred, squirrel.Gt{"expense_at": cond.Start})
	default:
		pred = append(pred, squirrel.Gt{"expense_at": now.AddDate(0, -1, 0)})
	}

	return pred
}

func orderBy(cond entity.ExpenseSearchCondition) []string {
	column := "expense_at"
	switch cond.Sort {
	case entity.SortByAmount:
		column = "amount"
	case entity.SortByCreated:
		column = "created_at"
	}

	direction := "DESC"
	if cond.Order == entity.OrderAsc {
		direction = "ASC"
	}

	return []string{column + " " + direction, "id " + direction}
}

type categorySumDB struct {
	CategoryID  int64 `db:"category_id"`
	TotalAmount int64 `db:"total_amount"`
}

func (r *expenseRepository) SearchExpenses(c context.Context, userID string, cond entity.ExpenseSearchCondition) ([]entity.Expense, int64, error) {
	requestID := contextPkg.GetRequestID(c)
	pred := searchPredicate(userID, cond, r.now())

	query, args, err := psql.Select(expenseColumns...).
		From(expensesTable).
		Where(pred).
		OrderBy(orderBy(cond)...).
		Limit(uint64(cond.Limit())).
		Offset(uint64(cond.Offset())).
		ToSql()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchExpenses query build err")
		return nil, 0, err
	}

	var rows []ExpenseDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchExpenses select err")
		return nil, 0, err
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From(expensesTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.q.QueryRowxContext(c, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchExpenses count err")
		return nil, 0, err
	}

	expenses := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := r.makeExpense(row)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}

	return expenses, total, nil
}

func (r *expenseRepository) SumExpensesByCategory(c context.Context, userID string, cond entity.ExpenseSearchCondition) ([]entity.CategoryExpenseSum, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := psql.Select("category_id", "COALESCE(SUM(amount), 0) AS total_amount").
		From(expensesTable).
		Where(searchPredicate(userID, cond, r.now())).
		GroupBy("category_id").
		OrderBy("category_id ASC").
		ToSql()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumExpensesByCategory query build err")
		return nil, err
	}

	var rows []categorySumDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SumExpensesByCategory select err")
		return nil, err
	}

	sums := make([]entity.CategoryExpenseSum, 0, len(rows))
	for _, row := range rows {
		sums = append(sums, entity.CategoryExpenseSum{
			CategoryID:  row.CategoryID,
			TotalAmount: row.TotalAmount,
		})
	}

	return sums, nil
}

// TodayExpensesPerCategory sums the user's expenses in [from, to] per category.
func (r *expenseRepository) TodayExpensesPerCategory(c context.Context, userID string, from time.Time, to time.Time) ([]entity.TodayExpensePerCategory, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := psql.Select("category_id", "COALESCE(SUM(amount), 0) AS total_amount").
		From(expensesTable).
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.Expr("expense_at BETWEEN ? AND ?", from, to),
		}).
		GroupBy("category_id").
		OrderBy("category_id ASC").
		ToSql()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("TodayExpensesPerCategory query build err")
		return nil, err
	}

	var rows []categorySumDB
	if err := sqlx.SelectContext(c, r.q, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("TodayExpensesPerCategory select err")
		return nil, err
	}

	today := make([]entity.TodayExpensePerCategory, 0, len(rows))
	for _, row := range rows {
		today = append(today, entity.TodayExpensePerCategory{
			CategoryID: row.CategoryID,
			PaidAmount: row.TotalAmount,
		})
	}

	return today, nil
}
