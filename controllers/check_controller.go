package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/models"
)

// CheckController handles received check operations
type CheckController struct {
	DB *mongo.Client
}

// NewCheckController creates a new check controller
func NewCheckController(db *mongo.Client) *CheckController {
	return &CheckController{DB: db}
}

// CreateCheck registers a received check in pending state. Admin only.
func (chc *CheckController) CreateCheck(c echo.Context) error {
	var req models.CreateCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Number, bank, subject, dates and a positive amount are required",
		})
	}

	issueDate, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		return errorResponse(c, err)
	}
	dueDate, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return errorResponse(c, err)
	}
	if dueDate.Before(issueDate) {
		return errorResponse(c, &models.ValidationError{Field: "dueDate", Message: "due date cannot precede issue date"})
	}

	subjectID, err := primitive.ObjectIDFromHex(req.SubjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid subject ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var client models.Client
	err = config.GetCollection(chc.DB, "clients").FindOne(ctx, bson.M{"_id": subjectID}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Subject client not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify client",
		})
	}

	now := time.Now()
	check := models.Check{
		ID:        primitive.NewObjectID(),
		Number:    req.Number,
		Bank:      req.Bank,
		SubjectID: subjectID,
		OwnerID:   client.OwnerID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Amount:    req.Amount,
		Status:    models.CheckPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := config.GetCollection(chc.DB, "checks").InsertOne(ctx, check); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create check",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Check registered successfully",
		Data:    check,
	})
}

// GetChecks lists checks visible to the requesting user, optionally by
// status, due date ascending.
func (chc *CheckController) GetChecks(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	cursor, err := config.GetCollection(chc.DB, "checks").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch checks",
		})
	}
	defer cursor.Close(ctx)

	checks := []models.Check{}
	if err := cursor.All(ctx, &checks); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode checks",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Checks retrieved successfully",
		Data:    checks,
	})
}

// GetDueChecks lists pending checks due within the next N days (default 7)
func (chc *CheckController) GetDueChecks(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	days := 7
	if v := c.QueryParam("days"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &days); err != nil || days < 1 {
			days = 7
		}
	}

	now := time.Now()
	filter["status"] = models.CheckPending
	filter["dueDate"] = bson.M{"$lte": now.AddDate(0, 0, days)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	cursor, err := config.GetCollection(chc.DB, "checks").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch due checks",
		})
	}
	defer cursor.Close(ctx)

	checks := []models.Check{}
	if err := cursor.All(ctx, &checks); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode checks",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Due checks retrieved successfully",
		Data:    checks,
	})
}

// UpdateCheckStatus transitions a pending check to collected, rejected or
// voided. Admin only. Collected/rejected/voided checks are final.
func (chc *CheckController) UpdateCheckStatus(c echo.Context) error {
	checkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid check ID",
		})
	}

	var req models.UpdateCheckStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Status must be collected, rejected or voided",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(chc.DB, "checks")

	var check models.Check
	err = collection.FindOne(ctx, bson.M{"_id": checkID}).Decode(&check)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Check not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch check",
		})
	}

	if !models.ValidCheckTransition(check.Status, req.Status) {
		return errorResponse(c, &models.BusinessRuleViolation{
			Message: fmt.Sprintf("Cannot change check status from %s to %s", check.Status, req.Status),
		})
	}

	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": checkID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update check status",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Check status updated successfully",
	})
}

// DeleteCheck removes a check. Only pending checks can be deleted. Admin only.
func (chc *CheckController) DeleteCheck(c echo.Context) error {
	checkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid check ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(chc.DB, "checks").DeleteOne(ctx, bson.M{
		"_id":    checkID,
		"status": models.CheckPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete check",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Check not found or not pending",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Check deleted successfully",
	})
}
