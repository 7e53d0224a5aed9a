package budgetHandler

import (
	budgetService "ProjectBudget/internal/api/budget/service"
	"ProjectBudget/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	budgetService budgetService.IBudgetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	budgetService budgetService.IBudgetService,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budget := srv.Group("/budget")

	budget.Post("", h.middleware.NewTokenMiddleware, h.CreateBudget)
	budget.Get("/:id", h.middleware.NewTokenMiddleware, h.GetBudget)
	budget.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteBudget)
	budget.Post("/:id/categories", h.middleware.NewTokenMiddleware, h.AddBudgetCategory)
	budget.Put("/:id/categories/:categoryId", h.middleware.NewTokenMiddleware, h.ModifyBudgetCategory)
	budget.Delete("/:id/categories/:categoryId", h.middleware.NewTokenMiddleware, h.RemoveBudgetCategory)
}
