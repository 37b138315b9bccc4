package handler

import (
	"crypto/subtle"
	"net/http"

	"tire-service/pkg/config"
	"tire-service/pkg/jwtutil"
	"tire-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var adminConfig *config.AdminConfig

// InitAdminAuth stores the admin credentials used by the login endpoint
func InitAdminAuth(cfg *config.AdminConfig) {
	adminConfig = cfg
}

// LoginRequest defines the admin login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin issues a JWT for the admin console
func AdminLogin(c echo.Context) error {
	log := logger.FromContext(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Login stays disabled until a password is configured
	if adminConfig == nil || adminConfig.Password == "" {
		log.Warn("Admin login attempted without configured credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "invalid credentials",
		})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(adminConfig.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminConfig.Password)) == 1
	if !emailOK || !passwordOK {
		log.Warn("Admin login failed", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "invalid credentials",
		})
	}

	token, err := jwtutil.GenerateToken(req.Email, "admin")
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate token",
		})
	}

	log.Info("Admin logged in", zap.String("email", req.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
	})
}
