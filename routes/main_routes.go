package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestioncomercial/gestion_backend/controllers"
	"github.com/gestioncomercial/gestion_backend/repositories"
	"github.com/gestioncomercial/gestion_backend/utils"
)

// SetupRoutes configures all API routes by calling individual route
// registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, redisClient *redis.Client) {
	ledgerRepo := repositories.NewLedgerRepository(db)
	searchAnalytics := utils.NewSearchAnalytics()

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	clientController := controllers.NewClientController(db, searchAnalytics)
	ledgerController := controllers.NewLedgerController(db, ledgerRepo)
	checkController := controllers.NewCheckController(db)
	expenseController := controllers.NewExpenseController(db)
	commissionController := controllers.NewCommissionController(db, ledgerRepo)
	dashboardController := controllers.NewDashboardController(db, redisClient)

	RegisterAuthRoutes(e, authController)
	RegisterClientRoutes(e, clientController, dashboardController)
	RegisterLedgerRoutes(e, ledgerController, checkController)
	RegisterCommissionRoutes(e, commissionController)
	RegisterAdminRoutes(e, userController, expenseController)
}
