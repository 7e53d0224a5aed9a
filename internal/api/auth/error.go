package auth

import (
	"ProjectBudget/pkg/response"
	"net/http"
)

var (
	ErrUsernameDuplicated = response.NewCodedError(http.StatusConflict, "U001", "username already exists")
	ErrUserNotFound       = response.NewCodedError(http.StatusNotFound, "U002", "user not found")
	ErrPasswordNotMatched = response.NewCodedError(http.StatusBadRequest, "U003", "username or password is wrong")
)
