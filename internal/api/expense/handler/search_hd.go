package expenseHandler

import (
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/handlerUtil"
	jwtPkg "ProjectBudget/pkg/jwt"
	"ProjectBudget/pkg/log"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// SearchExpenses serves GET /expenditures.
//
// Query: start, end (yyyy-MM-dd, required), min, max, cids (comma separated
// or repeated), page (from 0), size (at most 10; larger or non-positive
// values fall back to 10), sort (expense_date|created|amount), order (asc|desc).
func (h *ExpenseHandler) SearchExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"query":      string(ctx.Request().URI().QueryString()),
	}).Debug("Processing expense search request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	params, err := parseSearchParams(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.expenseService.SearchExpenses(c, userData.ID, params)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func parseSearchParams(ctx *fiber.Ctx) (entity.ExpenseSearchParams, error) {
	params := entity.ExpenseSearchParams{
		Start: optionalString(ctx, "start"),
		End:   optionalString(ctx, "end"),
		Sort:  ctx.Query("sort"),
		Order: ctx.Query("order"),
	}

	var err error
	if params.Min, err = optionalInt64(ctx, "min"); err != nil {
		return entity.ExpenseSearchParams{}, err
	}
	if params.Max, err = optionalInt64(ctx, "max"); err != nil {
		return entity.ExpenseSearchParams{}, err
	}
	if params.Page, err = optionalInt(ctx, "page"); err != nil {
		return entity.ExpenseSearchParams{}, err
	}
	if params.Size, err = optionalInt(ctx, "size"); err != nil {
		return entity.ExpenseSearchParams{}, err
	}
	if params.CategoryIDs, err = categoryIDs(ctx); err != nil {
		return entity.ExpenseSearchParams{}, err
	}

	return params, nil
}

func optionalString(ctx *fiber.Ctx, key string) *string {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func optionalInt64(ctx *fiber.Ctx, key string) (*int64, error) {
	raw := optionalString(ctx, key)
	if raw == nil {
		return nil, nil
	}

	v, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func optionalInt(ctx *fiber.Ctx, key string) (*int, error) {
	raw := optionalString(ctx, key)
	if raw == nil {
		return nil, nil
	}

	v, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func categoryIDs(ctx *fiber.Ctx) ([]int64, error) {
	var ids []int64
	for _, value := range ctx.Context().QueryArgs().PeekMulti("cids") {
		for _, part := range strings.Split(string(value), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, errors.New("cids must be a list of integers")
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
