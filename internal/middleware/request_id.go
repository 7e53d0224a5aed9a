package middleware

import (
	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = "X-Request-ID"

// maxRequestIDLength caps ids taken from the client header.
const maxRequestIDLength = 64

// NewRequestIDMiddleware reuses a sane X-Request-ID from the client or mints a
// ULID, then exposes it as a local, a response header and on the UserContext.
func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(RequestIDKey))

		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID, _ = utilsInstance.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)
		c.SetUserContext(contextPkg.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
