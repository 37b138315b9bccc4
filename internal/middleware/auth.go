package middleware

import (
	"net/http"
	"strings"

	"tire-service/pkg/jwtutil"
	"tire-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and requires the admin role. It
// guards the admin console routes.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.Role != "admin" {
			log.Warn("Token lacks admin role", zap.String("email", claims.Email))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}

		// Store user info in context for later use
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		log.Info("Admin request authenticated", zap.String("email", claims.Email))
		return next(c)
	}
}
