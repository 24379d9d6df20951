package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/controllers"
	"github.com/gestioncomercial/gestion_backend/middleware"
)

// RegisterClientRoutes sets up client portfolio and dashboard routes.
// All of them require a valid token; writes require the admin role.
func RegisterClientRoutes(e *echo.Echo, clientController *controllers.ClientController, dashboardController *controllers.DashboardController) {
	api := e.Group("/api", middleware.JWTMiddleware())

	api.GET("/dashboard/summary", dashboardController.GetSummary)

	api.GET("/clients", clientController.GetClients)
	api.GET("/clients/search", clientController.SearchClients)
	api.GET("/clients/:id", clientController.GetClient)
	api.GET("/clients/:id/balance", clientController.GetClientBalance)

	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/clients", clientController.CreateClient)
	admin.PUT("/clients/:id", clientController.UpdateClient)
	admin.DELETE("/clients/:id", clientController.DeleteClient)
	admin.GET("/clients/search/top-terms", clientController.TopSearchTerms)
}
