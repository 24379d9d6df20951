package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/controllers"
	"github.com/gestioncomercial/gestion_backend/middleware"
)

// RegisterLedgerRoutes sets up ledger record and check routes
func RegisterLedgerRoutes(e *echo.Echo, ledgerController *controllers.LedgerController, checkController *controllers.CheckController) {
	api := e.Group("/api", middleware.JWTMiddleware())

	api.GET("/ledger", ledgerController.GetLedgerRecords)
	api.GET("/ledger/sync", ledgerController.SyncLedgerRecords)
	api.GET("/ledger/stats", ledgerController.GetLedgerStats)

	api.GET("/checks", checkController.GetChecks)
	api.GET("/checks/due", checkController.GetDueChecks)

	admin := api.Group("", middleware.RequireAdmin())
	admin.POST("/ledger", ledgerController.CreateLedgerRecord)
	admin.PUT("/ledger/:id", ledgerController.UpdateLedgerRecord)
	admin.DELETE("/ledger/:id", ledgerController.DeleteLedgerRecord)
	admin.POST("/checks", checkController.CreateCheck)
	admin.PUT("/checks/:id/status", checkController.UpdateCheckStatus)
	admin.DELETE("/checks/:id", checkController.DeleteCheck)
}
