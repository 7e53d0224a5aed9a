package jwtPkg

import (
	"ProjectBudget/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const AccessTokenSecretKey = "JWT_ACCESS_TOKEN_SECRET"

var (
	ErrEmptyAuthorization   = errors.New("empty Authorization header")
	ErrInvalidAuthorization = errors.New("invalid Authorization format")
	ErrSecretNotConfigured  = errors.New("JWT secret not configured")
)

// Sign issues an HS256 token carrying data plus exp, valid for expiresIn.
func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv(AccessTokenSecretKey)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", AccessTokenSecretKey)
	}

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}
	claims["exp"] = expiredAt

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// VerifyTokenHeader parses the bearer token of c with secret.
func VerifyTokenHeader(c *fiber.Ctx, secret string) (*jwt.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, ErrEmptyAuthorization
	}

	accessToken, ok := strings.CutPrefix(header, "Bearer ")
	accessToken = strings.TrimSpace(accessToken)
	if !ok || accessToken == "" {
		return nil, ErrInvalidAuthorization
	}

	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	return Parse(accessToken, secret)
}

func Parse(accessToken string, secret string) (*jwt.Token, error) {
	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals("user").(entity.UserLoginData)
	if !ok || user.ID == "" {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
