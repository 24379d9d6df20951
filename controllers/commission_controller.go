package controllers

import (
	"context"
	"log"
	"net/http"
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

// CommissionController handles commission periods and settlements
type CommissionController struct {
	DB         *mongo.Client
	LedgerRepo *repositories.LedgerRepository
}

// NewCommissionController creates a new commission controller
func NewCommissionController(db *mongo.Client, ledgerRepo *repositories.LedgerRepository) *CommissionController {
	return &CommissionController{DB: db, LedgerRepo: ledgerRepo}
}

// CreatePeriod opens a commission period in pending state for a
// salesperson, snapshotting their current commission percentage. Admin only.
func (cmc *CommissionController) CreatePeriod(c echo.Context) error {
	var req models.CreateCommissionPeriodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Owner, date range and non-negative deductions are required",
		})
	}

	from, err := parseDate("from", req.From)
	if err != nil {
		return errorResponse(c, err)
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return errorResponse(c, err)
	}
	if to.Before(from) {
		return errorResponse(c, &models.ValidationError{Field: "to", Message: "period end cannot precede its start"})
	}

	ownerID, err := primitive.ObjectIDFromHex(req.OwnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var owner models.User
	err = config.GetCollection(cmc.DB, "users").FindOne(ctx, bson.M{"_id": ownerID}).Decode(&owner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Owner not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify owner",
		})
	}
	if owner.Role != models.RoleSalesperson {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Commission periods can only be opened for salespersons"})
	}

	now := time.Now()
	period := models.CommissionPeriod{
		ID:              primitive.NewObjectID(),
		OwnerID:         ownerID,
		From:            from,
		To:              to,
		Status:          models.PeriodPending,
		Percentage:      owner.CommissionPercent,
		Advances:        req.Advances,
		CashInHand:      req.CashInHand,
		OtherDeductions: req.Other,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := config.GetCollection(cmc.DB, "commission_periods").InsertOne(ctx, period); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create commission period",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Commission period created successfully",
		Data:    period,
	})
}

// GetPeriods lists commission periods, all for admins and own for
// salespersons, newest first.
func (cmc *CommissionController) GetPeriods(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "from", Value: -1}})
	cursor, err := config.GetCollection(cmc.DB, "commission_periods").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch commission periods",
		})
	}
	defer cursor.Close(ctx)

	periods := []models.CommissionPeriod{}
	if err := cursor.All(ctx, &periods); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode commission periods",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission periods retrieved successfully",
		Data:    periods,
	})
}

// CalculatePeriod computes the commission base from the owner's ledger
// records in range and advances the period to calculated. Recalculating a
// calculated period is allowed; a settled one is frozen. Admin only.
func (cmc *CommissionController) CalculatePeriod(c echo.Context) error {
	periodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid period ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	periodColl := config.GetCollection(cmc.DB, "commission_periods")

	var period models.CommissionPeriod
	err = periodColl.FindOne(ctx, bson.M{"_id": periodID}).Decode(&period)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission period not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch commission period",
		})
	}

	if !period.CanCalculate() {
		return errorResponse(c, &models.BusinessRuleViolation{
			Message: "A settled period cannot be recalculated; delete its settlement first",
		})
	}

	var owner models.User
	err = config.GetCollection(cmc.DB, "users").FindOne(ctx, bson.M{"_id": period.OwnerID}).Decode(&owner)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch period owner",
		})
	}
	if !models.ValidCommissionBasis(owner.CommissionBasis) {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Owner has an invalid commission basis configured"})
	}

	records, err := cmc.LedgerRepo.FindInRange(ctx, period.OwnerID, period.From, period.To)
	if err != nil {
		return errorResponse(c, err)
	}

	base, contributing := utils.CommissionBase(records, owner.CommissionBasis)
	period.Recalculate(base)

	now := time.Now()
	_, err = periodColl.UpdateOne(ctx, bson.M{"_id": periodID}, bson.M{"$set": bson.M{
		"status":          models.PeriodCalculated,
		"base":            period.Base,
		"grossCommission": period.GrossCommission,
		"netPayable":      period.NetPayable,
		"calculatedAt":    now,
		"updatedAt":       now,
	}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to persist calculation",
		})
	}

	period.Status = models.PeriodCalculated
	period.CalculatedAt = &now

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission period calculated successfully",
		Data: map[string]interface{}{
			"period":              period,
			"contributingRecords": len(contributing),
		},
	})
}

// SettlePeriod generates the immutable settlement for a calculated period:
// receipt number, snapshot amounts and the contributing ledger records as
// detail lines. Settlement insert, detail inserts and the period state
// change run in one transaction. Admin only.
func (cmc *CommissionController) SettlePeriod(c echo.Context) error {
	periodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid period ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var period models.CommissionPeriod
	err = config.GetCollection(cmc.DB, "commission_periods").FindOne(ctx, bson.M{"_id": periodID}).Decode(&period)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission period not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch commission period",
		})
	}

	if !period.CanSettle() {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Only a calculated period can be settled"})
	}

	var owner models.User
	err = config.GetCollection(cmc.DB, "users").FindOne(ctx, bson.M{"_id": period.OwnerID}).Decode(&owner)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch period owner",
		})
	}
	if !models.ValidCommissionBasis(owner.CommissionBasis) {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Owner has an invalid commission basis configured"})
	}

	records, err := cmc.LedgerRepo.FindInRange(ctx, period.OwnerID, period.From, period.To)
	if err != nil {
		return errorResponse(c, err)
	}
	_, contributing := utils.CommissionBase(records, owner.CommissionBasis)

	createdBy, _ := utils.GetUserIDFromToken(c)
	now := time.Now()

	settlement := models.Settlement{
		ID:              primitive.NewObjectID(),
		PeriodID:        period.ID,
		OwnerID:         period.OwnerID,
		ReceiptNumber:   utils.GenerateReceiptNumber(now),
		Base:            period.Base,
		Percentage:      period.Percentage,
		GrossCommission: period.GrossCommission,
		Advances:        period.Advances,
		CashInHand:      period.CashInHand,
		OtherDeductions: period.OtherDeductions,
		NetPayable:      period.NetPayable,
		IssuedAt:        now,
		CreatedBy:       createdBy,
	}

	details := make([]interface{}, 0, len(contributing))
	for _, r := range contributing {
		details = append(details, models.SettlementDetail{
			ID:             primitive.NewObjectID(),
			SettlementID:   settlement.ID,
			LedgerRecordID: r.ID,
			Date:           r.Date,
			Kind:           r.Kind,
			Amount:         r.Amount,
			Document:       r.Document,
		})
	}

	session, err := cmc.DB.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to start transaction",
		})
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := config.GetCollection(cmc.DB, "settlements").InsertOne(sc, settlement); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if _, err := config.GetCollection(cmc.DB, "settlement_details").InsertMany(sc, details); err != nil {
				return nil, err
			}
		}
		result, err := config.GetCollection(cmc.DB, "commission_periods").UpdateOne(
			sc,
			bson.M{"_id": period.ID, "status": models.PeriodCalculated},
			bson.M{"$set": bson.M{
				"status":       models.PeriodSettled,
				"settledAt":    now,
				"settlementId": settlement.ID,
				"updatedAt":    now,
			}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to settle period: " + err.Error(),
		})
	}

	// Email delivery is best-effort and stays outside the transaction
	if err := utils.SendSettlementEmail(owner.Email, owner.FullName, settlement); err != nil {
		log.Printf("Failed to send settlement email for %s: %v", settlement.ReceiptNumber, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Settlement generated successfully",
		Data: map[string]interface{}{
			"settlement": settlement,
			"details":    len(details),
		},
	})
}

// GetSettlement returns a settlement with its detail lines, if visible to
// the requesting user.
func (cmc *CommissionController) GetSettlement(c echo.Context) error {
	settlementID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid settlement ID",
		})
	}

	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	filter["_id"] = settlementID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var settlement models.Settlement
	err = config.GetCollection(cmc.DB, "settlements").FindOne(ctx, filter).Decode(&settlement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Settlement not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch settlement",
		})
	}

	cursor, err := config.GetCollection(cmc.DB, "settlement_details").Find(ctx, bson.M{"settlementId": settlementID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch settlement details",
		})
	}
	defer cursor.Close(ctx)

	details := []models.SettlementDetail{}
	if err := cursor.All(ctx, &details); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode settlement details",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settlement retrieved successfully",
		Data: map[string]interface{}{
			"settlement": settlement,
			"details":    details,
		},
	})
}

// DeleteSettlement removes a settlement and its detail lines and reverts
// the period to calculated, clearing its settled timestamp. The three
// steps run in one transaction so a partial failure cannot leave the
// period pointing at a half-deleted settlement. Admin only.
func (cmc *CommissionController) DeleteSettlement(c echo.Context) error {
	settlementID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid settlement ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var settlement models.Settlement
	err = config.GetCollection(cmc.DB, "settlements").FindOne(ctx, bson.M{"_id": settlementID}).Decode(&settlement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Settlement not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch settlement",
		})
	}

	session, err := cmc.DB.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to start transaction",
		})
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := config.GetCollection(cmc.DB, "settlement_details").DeleteMany(sc, bson.M{"settlementId": settlementID}); err != nil {
			return nil, err
		}
		if _, err := config.GetCollection(cmc.DB, "settlements").DeleteOne(sc, bson.M{"_id": settlementID}); err != nil {
			return nil, err
		}
		_, err := config.GetCollection(cmc.DB, "commission_periods").UpdateOne(
			sc,
			bson.M{"_id": settlement.PeriodID},
			bson.M{
				"$set":   bson.M{"status": models.PeriodCalculated, "updatedAt": time.Now()},
				"$unset": bson.M{"settledAt": "", "settlementId": ""},
			},
		)
		return nil, err
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete settlement: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settlement deleted, period reverted to calculated",
	})
}
