package expenseHandler

import (
	expenseService "ProjectBudget/internal/api/expense/service"
	"ProjectBudget/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	expenseService expenseService.IExpenseService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	expenseService expenseService.IExpenseService,
) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenditures := srv.Group("/expenditures")

	expenditures.Get("/today", h.middleware.NewTokenMiddleware, h.GetTodayReport)
	expenditures.Get("", h.middleware.NewTokenMiddleware, h.SearchExpenses)
	expenditures.Post("", h.middleware.NewTokenMiddleware, h.CreateExpense)
	expenditures.Get("/:id", h.middleware.NewTokenMiddleware, h.GetExpense)
	expenditures.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteExpense)
}
