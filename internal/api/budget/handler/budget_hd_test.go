package budgetHandler

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/middleware"
	jwtPkg "ProjectBudget/pkg/jwt"
	"ProjectBudget/pkg/validation"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type modifyCall struct {
	userID     string
	budgetID   string
	categoryID int64
	money      int64
}

type fakeBudgetService struct {
	createdFor string
	created    budget.CreateBudgetRequest
	createErr  error
	getRes     budget.BudgetResponse
	getErr     error
	deleteErr  error
	addRes     budget.CategoryBudgetResponse
	modified   []modifyCall
	removed    []int64
	removeErr  error
}

func (f *fakeBudgetService) CreateBudget(_ context.Context, userID string, req budget.CreateBudgetRequest) (string, error) {
	f.createdFor = userID
	f.created = req
	return "01HXBUDGET", f.createErr
}

func (f *fakeBudgetService) GetBudget(context.Context, string, string) (budget.BudgetResponse, error) {
	return f.getRes, f.getErr
}

func (f *fakeBudgetService) DeleteBudget(context.Context, string, string) error {
	return f.deleteErr
}

func (f *fakeBudgetService) AddBudgetCategory(context.Context, string, string, budget.AddCategoryRequest) (budget.CategoryBudgetResponse, error) {
	return f.addRes, nil
}

func (f *fakeBudgetService) ModifyBudgetCategory(_ context.Context, userID string, budgetID string, categoryID int64, req budget.ModifyCategoryRequest) error {
	f.modified = append(f.modified, modifyCall{userID: userID, budgetID: budgetID, categoryID: categoryID, money: req.Money})
	return nil
}

func (f *fakeBudgetService) RemoveBudgetCategory(_ context.Context, _ string, _ string, categoryID int64) error {
	f.removed = append(f.removed, categoryID)
	return f.removeErr
}

func newTestApp(t *testing.T, svc *fakeBudgetService) (*fiber.App, string) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecretKey, "handler-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.New(logger, middleware.Options{})
	h := New(logger, validation.New(), mw, svc)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h.Start(app.Group("/api/v1"))

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "user-1", "username": "alice"}, time.Hour)
	require.NoError(t, err)
	return app, token
}

func do(t *testing.T, app *fiber.App, token, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, jsoniter.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestCreateBudget(t *testing.T) {
	svc := &fakeBudgetService{}
	app, token := newTestApp(t, svc)

	resp, body := do(t, app, token, http.MethodPost, "/api/v1/budget",
		`{"month":"2024-03","budgetByCategories":[{"categoryId":1,"money":300000},{"categoryId":2,"money":150000}]}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/v1/budget/01HXBUDGET", resp.Header.Get("Location"))
	assert.Equal(t, "01HXBUDGET", body["id"])
	assert.Equal(t, "user-1", svc.createdFor)
	assert.Len(t, svc.created.BudgetByCategories, 2)
}

func TestCreateBudgetValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad month", body: `{"month":"2024-13","budgetByCategories":[{"categoryId":1,"money":1}]}`},
		{name: "no categories", body: `{"month":"2024-03","budgetByCategories":[]}`},
		{name: "zero money", body: `{"month":"2024-03","budgetByCategories":[{"categoryId":1,"money":0}]}`},
		{name: "missing category", body: `{"month":"2024-03","budgetByCategories":[{"money":10}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBudgetService{}
			app, token := newTestApp(t, svc)

			resp, body := do(t, app, token, http.MethodPost, "/api/v1/budget", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
			assert.Empty(t, svc.createdFor)
		})
	}
}

func TestCreateBudgetRequiresToken(t *testing.T) {
	app, _ := newTestApp(t, &fakeBudgetService{})

	resp, _ := do(t, app, "", http.MethodPost, "/api/v1/budget", `{"month":"2024-03"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetBudget(t *testing.T) {
	svc := &fakeBudgetService{getRes: budget.BudgetResponse{ID: "b1", Month: "2024-03", TotalMoney: 450000}}
	app, token := newTestApp(t, svc)

	resp, body := do(t, app, token, http.MethodGet, "/api/v1/budget/b1", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-03", body["month"])
	assert.Equal(t, float64(450000), body["totalMoney"])
}

func TestGetBudgetErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: budget.ErrBudgetNotFound, status: http.StatusNotFound, code: "B003"},
		{err: budget.ErrNoPermission, status: http.StatusForbidden, code: "A001"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app, token := newTestApp(t, &fakeBudgetService{getErr: tt.err})

			resp, body := do(t, app, token, http.MethodGet, "/api/v1/budget/b1", "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestDeleteBudget(t *testing.T) {
	app, token := newTestApp(t, &fakeBudgetService{})

	resp, _ := do(t, app, token, http.MethodDelete, "/api/v1/budget/b1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAddBudgetCategory(t *testing.T) {
	svc := &fakeBudgetService{addRes: budget.CategoryBudgetResponse{ID: "cb", CategoryID: 3, Money: 70000}}
	app, token := newTestApp(t, svc)

	resp, body := do(t, app, token, http.MethodPost, "/api/v1/budget/b1/categories", `{"categoryId":3,"money":70000}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(3), body["categoryId"])
}

func TestModifyBudgetCategory(t *testing.T) {
	svc := &fakeBudgetService{}
	app, token := newTestApp(t, svc)

	resp, _ := do(t, app, token, http.MethodPut, "/api/v1/budget/b1/categories/7", `{"money":5000}`)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, svc.modified, 1)
	assert.Equal(t, modifyCall{userID: "user-1", budgetID: "b1", categoryID: 7, money: 5000}, svc.modified[0])
}

func TestModifyBudgetCategoryBadID(t *testing.T) {
	svc := &fakeBudgetService{}
	app, token := newTestApp(t, svc)

	resp, _ := do(t, app, token, http.MethodPut, "/api/v1/budget/b1/categories/abc", `{"money":5000}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.modified)
}

func TestRemoveBudgetCategory(t *testing.T) {
	svc := &fakeBudgetService{}
	app, token := newTestApp(t, svc)

	resp, _ := do(t, app, token, http.MethodDelete, "/api/v1/budget/b1/categories/2", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []int64{2}, svc.removed)

	svc.removeErr = budget.ErrBudgetCategoryNotFound
	resp, body := do(t, app, token, http.MethodDelete, "/api/v1/budget/b1/categories/9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "B005", body["code"])
}
