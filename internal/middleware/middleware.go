package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

// Options tunes the middleware. An empty TokenSecret makes the token guard
// read JWT_ACCESS_TOKEN_SECRET from the environment on every request.
type Options struct {
	RequestsPerSecond float64
	Burst             int
	LimiterIdleTTL    time.Duration
	TokenSecret       string
}

type middleware struct {
	tokenSecret         string
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, opts Options) Middleware {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 50
	}
	if opts.Burst <= 0 {
		opts.Burst = 100
	}

	return &middleware{
		tokenSecret:         opts.TokenSecret,
		rateLimitter:        newRateLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst, opts.LimiterIdleTTL),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
