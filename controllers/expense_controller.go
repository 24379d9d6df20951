package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/models"
	"github.com/gestioncomercial/gestion_backend/utils"
)

// ExpenseController handles operating expense operations. Expenses are an
// admin-only area.
type ExpenseController struct {
	DB *mongo.Client
}

// NewExpenseController creates a new expense controller
func NewExpenseController(db *mongo.Client) *ExpenseController {
	return &ExpenseController{DB: db}
}

// CreateExpense records an expense
func (ec *ExpenseController) CreateExpense(c echo.Context) error {
	var req models.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Date, category and a positive amount are required",
		})
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return errorResponse(c, err)
	}

	createdBy, _ := utils.GetUserIDFromToken(c)

	now := time.Now()
	expense := models.Expense{
		ID:          primitive.NewObjectID(),
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(ec.DB, "expenses").InsertOne(ctx, expense); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create expense",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Expense recorded successfully",
		Data:    expense,
	})
}

// GetExpenses lists expenses, newest first, optionally for one month
func (ec *ExpenseController) GetExpenses(c echo.Context) error {
	filter := bson.M{}
	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid year",
			})
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if monthStr := c.QueryParam("month"); monthStr != "" {
			month, err := strconv.Atoi(monthStr)
			if err != nil || month < 1 || month > 12 {
				return c.JSON(http.StatusBadRequest, models.Response{
					Status:  http.StatusBadRequest,
					Message: "Invalid month",
				})
			}
			start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}
		filter["date"] = bson.M{"$gte": start, "$lt": end}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.GetCollection(ec.DB, "expenses").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch expenses",
		})
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode expenses",
		})
	}

	// Totals by category for the filtered range
	totals := make(map[string]float64)
	var total float64
	for _, e := range expenses {
		totals[e.Category] += math.Abs(e.Amount)
		total += math.Abs(e.Amount)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Expenses retrieved successfully",
		Data: map[string]interface{}{
			"expenses":         expenses,
			"totalsByCategory": totals,
			"total":            total,
		},
	})
}

// UpdateExpense applies a partial update to an expense
func (ec *ExpenseController) UpdateExpense(c echo.Context) error {
	expenseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid expense ID",
		})
	}

	var req models.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			return errorResponse(c, err)
		}
		update["date"] = date
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Amount != nil {
		update["amount"] = *req.Amount
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(ec.DB, "expenses").UpdateOne(
		ctx,
		bson.M{"_id": expenseID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update expense",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Expense updated successfully",
	})
}

// DeleteExpense removes an expense
func (ec *ExpenseController) DeleteExpense(c echo.Context) error {
	expenseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid expense ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(ec.DB, "expenses").DeleteOne(ctx, bson.M{"_id": expenseID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete expense",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Expense deleted successfully",
	})
}
