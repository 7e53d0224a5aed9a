package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses (id, user_id, category_id, memo, amount, expense_at, exclude_from_total, created_at, updated_at)
		VALUES (:id, :user_id, :category_id, :memo, :amount, :expense_at, :exclude_from_total, :created_at, :updated_at)
	`

	queryGetExpenseByID = `
		SELECT id, user_id, category_id, memo, amount, expense_at, exclude_from_total, created_at, updated_at
		FROM expenses
		WHERE id = :id
	`

	queryDeleteExpense = `
		DELETE FROM expenses
		WHERE id = :id
	`
)

const expensesTable = "expenses"

var expenseColumns = []string{
	"id", "user_id", "category_id", "memo", "amount",
	"expense_at", "exclude_from_total", "created_at", "updated_at",
}
