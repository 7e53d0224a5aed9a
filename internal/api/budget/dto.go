package budget

import "time"

type CategoryBudgetRequest struct {
	CategoryID int64 `json:"categoryId" validate:"required,gte=1"`
	Money      int64 `json:"money" validate:"gte=1"`
}

type CreateBudgetRequest struct {
	Month              string                  `json:"month" validate:"required,yearmonth"`
	BudgetByCategories []CategoryBudgetRequest `json:"budgetByCategories" validate:"required,min=1,dive"`
}

type CreateBudgetResponse struct {
	ID string `json:"id"`
}

type AddCategoryRequest struct {
	CategoryID int64 `json:"categoryId" validate:"required,gte=1"`
	Money      int64 `json:"money" validate:"gte=1"`
}

type ModifyCategoryRequest struct {
	Money int64 `json:"money" validate:"gte=1"`
}

type CategoryBudgetResponse struct {
	ID         string    `json:"id"`
	CategoryID int64     `json:"categoryId"`
	Money      int64     `json:"money"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type BudgetResponse struct {
	ID                 string                   `json:"id"`
	Month              string                   `json:"month"`
	TotalMoney         int64                    `json:"totalMoney"`
	BudgetByCategories []CategoryBudgetResponse `json:"budgetByCategories"`
	CreatedAt          time.Time                `json:"createdAt"`
	UpdatedAt          time.Time                `json:"updatedAt"`
}
