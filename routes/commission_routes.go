package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/controllers"
	"github.com/gestioncomercial/gestion_backend/middleware"
)

// RegisterCommissionRoutes sets up commission period and settlement routes.
// Salespersons can read their own periods and settlements; every state
// transition is admin only.
func RegisterCommissionRoutes(e *echo.Echo, commissionController *controllers.CommissionController) {
	api := e.Group("/api", middleware.JWTMiddleware())

	api.GET("/commission-periods", commissionController.GetPeriods)
	api.GET("/settlements/:id", commissionController.GetSettlement)

	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/commission-periods", commissionController.CreatePeriod)
	admin.POST("/commission-periods/:id/calculate", commissionController.CalculatePeriod)
	admin.POST("/commission-periods/:id/settle", commissionController.SettlePeriod)
	admin.DELETE("/settlements/:id", commissionController.DeleteSettlement)
}
