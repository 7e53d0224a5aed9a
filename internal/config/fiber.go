package config

import (
	"ProjectBudget/pkg/handlerUtil"
	"errors"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, cfg *Config) *fiber.App {
	if cfg == nil {
		cfg = Load()
	}

	app := fiber.New(
		fiber.Config{
			AppName:           "Budget Backend",
			BodyLimit:         cfg.BodyLimit,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: cfg.AppEnv == "development",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler renders errors that escape the handlers (unknown routes,
// oversized bodies) in the same JSON shape as handlerUtil.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			logger.WithFields(logrus.Fields{
				"path":  ctx.Path(),
				"error": err.Error(),
			}).Error("Unhandled error")
		}

		return ctx.Status(status).JSON(handlerUtil.ErrorResponse{Error: message})
	}
}
