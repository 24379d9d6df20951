package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/controllers"
	"github.com/gestioncomercial/gestion_backend/middleware"
)

// RegisterAdminRoutes sets up user administration and expense routes
func RegisterAdminRoutes(e *echo.Echo, userController *controllers.UserController, expenseController *controllers.ExpenseController) {
	api := e.Group("/api", middleware.JWTMiddleware())

	api.GET("/users/me", userController.GetProfile)

	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/users", userController.CreateUser)
	admin.GET("/users", userController.GetUsers)
	admin.PUT("/users/:id", userController.UpdateUser)
	admin.DELETE("/users/:id", userController.DeleteUser)

	admin.POST("/expenses", expenseController.CreateExpense)
	admin.GET("/expenses", expenseController.GetExpenses)
	admin.PUT("/expenses/:id", expenseController.UpdateExpense)
	admin.DELETE("/expenses/:id", expenseController.DeleteExpense)
}
