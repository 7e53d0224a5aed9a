package budgetRepository

const (
	queryCreateBudget = `
		INSERT INTO budgets (id, user_id, budget_month, created_at, updated_at)
		VALUES (:id, :user_id, :budget_month, :created_at, :updated_at)
	`

	queryCreateCategoryBudget = `
		INSERT INTO category_budgets (id, budget_id, category_id, amount, created_at, updated_at)
		VALUES (:id, :budget_id, :category_id, :amount, :created_at, :updated_at)
	`

	queryGetBudgetByID = `
		SELECT id, user_id, budget_month, created_at, updated_at
		FROM budgets
		WHERE id = :id
	`

	queryGetBudgetByIDForUpdate = queryGetBudgetByID + ` FOR UPDATE`

	queryGetCategoryBudgetsByBudgetID = `
		SELECT id, budget_id, category_id, amount, created_at, updated_at
		FROM category_budgets
		WHERE budget_id = :budget_id
		ORDER BY created_at ASC, id ASC
	`

	queryGetCategoryBudgetsByMonth = `
		SELECT cb.id, cb.budget_id, cb.category_id, cb.amount, cb.created_at, cb.updated_at
		FROM category_budgets cb
		JOIN budgets b ON b.id = cb.budget_id
		WHERE b.user_id = :user_id AND b.budget_month = :budget_month
		ORDER BY b.created_at ASC, cb.created_at ASC, cb.id ASC
	`

	queryUpdateCategoryBudget = `
		UPDATE category_budgets
		SET amount = :amount, updated_at = :updated_at
		WHERE budget_id = :budget_id AND category_id = :category_id
	`

	queryDeleteCategoryBudget = `
		DELETE FROM category_budgets
		WHERE budget_id = :budget_id AND category_id = :category_id
	`

	queryDeleteBudget = `
		DELETE FROM budgets
		WHERE id = :id
	`
)
