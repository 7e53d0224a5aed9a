package budget

import (
	"ProjectBudget/pkg/response"
	"net/http"
)

var (
	ErrInvalidBudget            = response.NewCodedError(http.StatusBadRequest, "B001", "invalid budget")
	ErrInvalidAmount            = response.NewCodedError(http.StatusBadRequest, "B002", "amount must not be negative")
	ErrBudgetNotFound           = response.NewCodedError(http.StatusNotFound, "B003", "budget not found")
	ErrBudgetCategoryDuplicated = response.NewCodedError(http.StatusConflict, "B004", "budget category already exists")
	ErrBudgetCategoryNotFound   = response.NewCodedError(http.StatusNotFound, "B005", "budget category not found")
	ErrNoPermission             = response.NewCodedError(http.StatusForbidden, "A001", "no permission for this budget")
)
