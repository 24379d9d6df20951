package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/controllers"
)

// RegisterAuthRoutes sets up the public authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	e.POST("/api/auth/login", authController.Login)
	e.GET("/api/auth/validate-token", authController.ValidateToken)
}
