// Package middleware provides authentication middleware for the application.
package middleware

import (
	"strings"

	"murmur/internal/config"
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// PrincipalKey is the fiber locals key holding the resolved principal.
const PrincipalKey = "principal"

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	principal, err := principalFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(PrincipalKey, principal)
	return c.Next()
}

// OptionalAuth resolves the principal when a token is present and falls
// back to the anonymous marker otherwise. A malformed token is still an
// error; only absence is anonymous.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		c.Locals(PrincipalKey, models.Anonymous)
		return c.Next()
	}

	principal, err := principalFromHeader(authHeader)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(PrincipalKey, principal)
	return c.Next()
}

// Principal returns the principal stored by the auth middleware, or the
// anonymous marker when none was set.
func Principal(c *fiber.Ctx) models.Principal {
	if principal, ok := c.Locals(PrincipalKey).(models.Principal); ok {
		return principal
	}
	return models.Anonymous
}

func principalFromHeader(authHeader string) (models.Principal, error) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	// The user uuid rides in the "sub" claim (RFC 7519 subject).
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Anonymous, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}

	principal := models.Principal{UUID: sub}
	if username, ok := claims["username"].(string); ok {
		principal.Username = username
	}
	if raw, ok := claims["authorities"].([]interface{}); ok {
		for _, item := range raw {
			if authority, ok := item.(string); ok {
				principal.Authorities = append(principal.Authorities, authority)
			}
		}
	}

	return principal, nil
}
