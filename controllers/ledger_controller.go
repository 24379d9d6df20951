package controllers

import (
	"context"
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
	"github.com/gestioncomercial/gestion_backend/repositories"
	"github.com/gestioncomercial/gestion_backend/utils"
)

// LedgerController handles ledger record operations
type LedgerController struct {
	DB   *mongo.Client
	Repo *repositories.LedgerRepository
}

// NewLedgerController creates a new ledger controller
func NewLedgerController(db *mongo.Client, repo *repositories.LedgerRepository) *LedgerController {
	return &LedgerController{DB: db, Repo: repo}
}

// CreateLedgerRecord registers a financial event against a client. The
// record's owner is the client's assigned salesperson, and the amount sign
// is normalized here and nowhere else. Admin only.
func (lc *LedgerController) CreateLedgerRecord(c echo.Context) error {
	var req models.CreateLedgerRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Date, subject, kind and amount are required",
		})
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return errorResponse(c, err)
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
	err = config.GetCollection(lc.DB, "clients").FindOne(ctx, bson.M{"_id": subjectID}).Decode(&client)
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

	createdBy, _ := utils.GetUserIDFromToken(c)

	record := models.LedgerRecord{
		Date:      date,
		SubjectID: subjectID,
		OwnerID:   client.OwnerID,
		Kind:      req.Kind,
		Amount:    models.NormalizeLedgerAmount(req.Kind, req.Amount),
		Document:  req.Document,
		Comment:   req.Comment,
		CreatedBy: createdBy,
	}

	if err := lc.Repo.Insert(ctx, &record); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create ledger record: " + err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Ledger record created successfully",
		Data:    record,
	})
}

// GetLedgerRecords lists records visible to the requesting user, newest
// first, optionally filtered by subject.
func (lc *LedgerController) GetLedgerRecords(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	if subject := c.QueryParam("subjectId"); subject != "" {
		subjectID, err := primitive.ObjectIDFromHex(subject)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid subject ID",
			})
		}
		filter["subjectId"] = subjectID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "seq", Value: -1}})
	cursor, err := config.GetCollection(lc.DB, "ledger_records").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch ledger records",
		})
	}
	defer cursor.Close(ctx)

	records := []models.LedgerRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode ledger records",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ledger records retrieved successfully",
		Data:    records,
	})
}

// SyncLedgerRecords walks the full ledger collection in pages and returns
// everything in one response. The incomplete flag warns the caller when the
// page budget ran out before the end of the data.
func (lc *LedgerController) SyncLedgerRecords(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	pageSize := repositories.DefaultPageSize
	if v := c.QueryParam("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	maxPages := repositories.DefaultMaxPages
	if v := c.QueryParam("maxPages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxPages = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := lc.Repo.FetchAll(ctx, filter, pageSize, maxPages)
	if err != nil {
		return errorResponse(c, err)
	}

	message := "Ledger synchronized successfully"
	if result.Incomplete {
		message = "Ledger synchronized partially: page budget exhausted, result may be incomplete"
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    result,
	})
}

// UpdateLedgerRecord applies a partial update, re-normalizing the amount
// sign when kind or amount change. Admin only.
func (lc *LedgerController) UpdateLedgerRecord(c echo.Context) error {
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid record ID",
		})
	}

	var req models.UpdateLedgerRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(lc.DB, "ledger_records")

	var record models.LedgerRecord
	err = collection.FindOne(ctx, bson.M{"_id": recordID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Ledger record not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch ledger record",
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
	if req.Document != nil {
		update["document"] = *req.Document
	}
	if req.Comment != nil {
		update["comment"] = *req.Comment
	}

	kind := record.Kind
	if req.Kind != nil {
		kind = *req.Kind
		update["kind"] = kind
	}
	amount := record.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Kind != nil || req.Amount != nil {
		update["amount"] = models.NormalizeLedgerAmount(kind, amount)
	}

	_, err = collection.UpdateOne(ctx, bson.M{"_id": recordID}, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update ledger record",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ledger record updated successfully",
	})
}

// DeleteLedgerRecord removes a record. Admin only.
func (lc *LedgerController) DeleteLedgerRecord(c echo.Context) error {
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid record ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(lc.DB, "ledger_records").DeleteOne(ctx, bson.M{"_id": recordID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete ledger record",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Ledger record not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ledger record deleted successfully",
	})
}

// GetLedgerStats returns monthly net sales, collections and per-owner
// balances for a year (and optionally one month).
func (lc *LedgerController) GetLedgerStats(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid or missing year",
		})
	}

	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	// Restrict the query to the requested year
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	filter["date"] = bson.M{"$gte": start, "$lt": end}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(lc.DB, "ledger_records").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch ledger records",
		})
	}
	defer cursor.Close(ctx)

	var records []models.LedgerRecord
	if err := cursor.All(ctx, &records); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode ledger records",
		})
	}

	data := map[string]interface{}{
		"year":            year,
		"months":          utils.YearlySummary(records, year),
		"balancesByOwner": utils.BalancesByOwner(records),
	}

	if monthStr := c.QueryParam("month"); monthStr != "" {
		monthNum, err := strconv.Atoi(monthStr)
		if err != nil || monthNum < 1 || monthNum > 12 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid month",
			})
		}
		month := time.Month(monthNum)
		data["month"] = monthNum
		data["net"] = utils.MonthlyNet(records, year, month)
		data["collections"] = utils.MonthlyCollections(records, year, month)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ledger statistics computed successfully",
		Data:    data,
	})
}
