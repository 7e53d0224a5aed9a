package middleware

import (
	"ProjectBudget/internal/entity"
	jwtPkg "ProjectBudget/pkg/jwt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = jwtPkg.AccessTokenSecretKey
)

func (m *middleware) secret() string {
	if m.tokenSecret != "" {
		return m.tokenSecret
	}
	return os.Getenv(AccessTokenSecret)
}

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

func (m *middleware) unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": unauthorizedMessage,
		"code":  "UNAUTHORIZED",
	})
}

// NewTokenMiddleware verifies the bearer token and stores the caller as
// entity.UserLoginData under the "user" local.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, m.secret())
	if err != nil {
		fields["error"] = err.Error()
		m.log.WithFields(fields).Warn("Token verification failed")
		return m.unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(fields).Warn("Invalid token claims")
		return m.unauthorized(ctx)
	}

	id, idOK := claims["id"].(string)
	username, usernameOK := claims["username"].(string)
	if !idOK || !usernameOK || id == "" {
		m.log.WithFields(fields).Warn("Token claims are missing required fields")
		return m.unauthorized(ctx)
	}

	ctx.Locals("user", entity.UserLoginData{
		ID:       id,
		Username: username,
	})

	fields["user_id"] = id
	m.log.WithFields(fields).Debug("Authentication successful")
	return ctx.Next()
}
