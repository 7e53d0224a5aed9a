package expense

import (
	"ProjectBudget/pkg/response"
	"net/http"
)

var (
	ErrInvalidExpense    = response.NewCodedError(http.StatusBadRequest, "E001", "invalid expense")
	ErrExpenseNotFound   = response.NewCodedError(http.StatusNotFound, "E003", "expense not found")
	ErrNoPermission      = response.NewCodedError(http.StatusForbidden, "A001", "no permission for this expense")
	ErrDateRequired      = response.NewCodedError(http.StatusBadRequest, "S001", "start and end dates are required")
	ErrInvalidDateFormat = response.NewCodedError(http.StatusBadRequest, "S002", "date must match yyyy-MM-dd")
)
