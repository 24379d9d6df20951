package controllers

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/middleware"
	"github.com/gestioncomercial/gestion_backend/models"
	"github.com/gestioncomercial/gestion_backend/utils"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardController serves the home screen summary
type DashboardController struct {
	DB    *mongo.Client
	Redis *redis.Client
}

// NewDashboardController creates a new dashboard controller. redisClient
// may be nil, in which case summaries are computed on every request.
func NewDashboardController(db *mongo.Client, redisClient *redis.Client) *DashboardController {
	return &DashboardController{DB: db, Redis: redisClient}
}

// DashboardSummary is the aggregate snapshot for the current month.
type DashboardSummary struct {
	ClientCount        int64   `json:"clientCount"`
	TotalBalance       float64 `json:"totalBalance"`
	MonthNet           float64 `json:"monthNet"`
	MonthCollections   float64 `json:"monthCollections"`
	PendingChecksTotal float64 `json:"pendingChecksTotal"`
	PendingChecksCount int     `json:"pendingChecksCount"`
	GeneratedAt        string  `json:"generatedAt"`
}

// GetSummary returns the dashboard snapshot for the requesting user's
// visible data: client count, total outstanding balance, current month net
// and collections, and pending checks. A failure while loading checks
// degrades that section to zero instead of failing the whole summary.
// Results are cached per user for a short TTL when Redis is available.
func (dc *DashboardController) GetSummary(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cacheKey := dc.cacheKey(c)
	if dc.Redis != nil {
		if cached, err := dc.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary DashboardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Dashboard summary retrieved successfully",
					Data:    summary,
				})
			}
		}
	}

	clientCount, err := config.GetCollection(dc.DB, "clients").CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count clients",
		})
	}

	cursor, err := config.GetCollection(dc.DB, "ledger_records").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch ledger records",
		})
	}
	records := []models.LedgerRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode ledger records",
		})
	}

	now := time.Now()
	summary := DashboardSummary{
		ClientCount:      clientCount,
		TotalBalance:     utils.RunningBalance(records),
		MonthNet:         utils.MonthlyNet(records, now.Year(), now.Month()),
		MonthCollections: utils.MonthlyCollections(records, now.Year(), now.Month()),
		GeneratedAt:      now.Format(time.RFC3339),
	}

	// Checks are secondary on the dashboard: if they cannot be loaded the
	// rest of the summary still renders, with the check section zeroed.
	checkFilter, _ := visibilityFilter(c)
	checkFilter["status"] = models.CheckPending
	checkCursor, err := config.GetCollection(dc.DB, "checks").Find(ctx, checkFilter)
	if err != nil {
		log.Printf("Dashboard: failed to fetch pending checks: %v", err)
	} else {
		checks := []models.Check{}
		if err := checkCursor.All(ctx, &checks); err != nil {
			log.Printf("Dashboard: failed to decode pending checks: %v", err)
		} else {
			summary.PendingChecksCount = len(checks)
			for _, ch := range checks {
				summary.PendingChecksTotal += math.Abs(ch.Amount)
			}
		}
	}

	if dc.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := dc.Redis.Set(ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				log.Printf("Dashboard: failed to cache summary: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard summary retrieved successfully",
		Data:    summary,
	})
}

// cacheKey scopes cached summaries per user so role visibility never leaks
// across accounts.
func (dc *DashboardController) cacheKey(c echo.Context) string {
	userID, _ := middleware.ExtractUserID(c)
	return "dashboard:summary:" + userID
}
