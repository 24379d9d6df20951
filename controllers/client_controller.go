package controllers

import (
	"context"
	"net/http"
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

// clientSearchFields are the paths the interactive client search matches.
var clientSearchFields = []string{"legalName", "taxId", "city"}

// ClientController handles client (ledger subject) operations
type ClientController struct {
	DB        *mongo.Client
	Analytics *utils.SearchAnalytics
}

// NewClientController creates a new client controller
func NewClientController(db *mongo.Client, analytics *utils.SearchAnalytics) *ClientController {
	return &ClientController{DB: db, Analytics: analytics}
}

// visibilityFilter returns the query predicate for the requesting user:
// empty for admins, an ownerId match for salespersons. Role scoping happens
// at the query boundary, not by filtering a fully fetched dataset.
func visibilityFilter(c echo.Context) (bson.M, error) {
	if utils.IsAdmin(c) {
		return bson.M{}, nil
	}
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	return bson.M{"ownerId": userID}, nil
}

// CreateClient registers a new client. Admin only.
func (cc *ClientController) CreateClient(c echo.Context) error {
	var req models.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Legal name, tax id and owner are required",
		})
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

	// The owner must be an existing user
	var owner models.User
	err = config.GetCollection(cc.DB, "users").FindOne(ctx, bson.M{"_id": ownerID}).Decode(&owner)
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

	now := time.Now()
	client := models.Client{
		ID:         primitive.NewObjectID(),
		LegalName:  req.LegalName,
		TaxID:      req.TaxID,
		Address:    req.Address,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		Email:      req.Email,
		OwnerID:    ownerID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := config.GetCollection(cc.DB, "clients").InsertOne(ctx, client); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create client",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Client created successfully",
		Data:    client,
	})
}

// GetClients lists clients visible to the requesting user
func (cc *ClientController) GetClients(c echo.Context) error {
	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "legalName", Value: 1}})
	cursor, err := config.GetCollection(cc.DB, "clients").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch clients",
		})
	}
	defer cursor.Close(ctx)

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode clients",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Clients retrieved successfully",
		Data:    clients,
	})
}

// GetClient returns one client by id, if visible to the requesting user
func (cc *ClientController) GetClient(c echo.Context) error {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	filter["_id"] = clientID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var client models.Client
	err = config.GetCollection(cc.DB, "clients").FindOne(ctx, filter).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Client not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch client",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client retrieved successfully",
		Data:    client,
	})
}

// UpdateClient applies a partial update. Admin only.
func (cc *ClientController) UpdateClient(c echo.Context) error {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	var req models.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.LegalName != nil {
		update["legalName"] = *req.LegalName
	}
	if req.TaxID != nil {
		update["taxId"] = *req.TaxID
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.City != nil {
		update["city"] = *req.City
	}
	if req.Province != nil {
		update["province"] = *req.Province
	}
	if req.PostalCode != nil {
		update["postalCode"] = *req.PostalCode
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if req.OwnerID != nil {
		ownerID, err := primitive.ObjectIDFromHex(*req.OwnerID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid owner ID",
			})
		}
		update["ownerId"] = ownerID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(cc.DB, "clients").UpdateOne(
		ctx,
		bson.M{"_id": clientID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update client",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client updated successfully",
	})
}

// DeleteClient removes a client. Blocked while ledger records reference it.
// Admin only.
func (cc *ClientController) DeleteClient(c echo.Context) error {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.GetCollection(cc.DB, "ledger_records").CountDocuments(ctx, bson.M{"subjectId": clientID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check ledger records",
		})
	}
	if count > 0 {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Cannot delete a client with ledger records"})
	}

	result, err := config.GetCollection(cc.DB, "clients").DeleteOne(ctx, bson.M{"_id": clientID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete client",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client deleted successfully",
	})
}

// SearchClients runs the interactive scored search over the clients
// visible to the requesting user. Accent and case insensitive, with fuzzy
// fallback for typos.
func (cc *ClientController) SearchClients(c echo.Context) error {
	term := c.QueryParam("q")

	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(cc.DB, "clients").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch clients",
		})
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode clients",
		})
	}

	results := utils.SearchScored(docs, term, clientSearchFields, utils.SearchOptions{
		FoldPunctuation: true,
		Analytics:       cc.Analytics,
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Search completed",
		Data:    results,
	})
}

// TopSearchTerms returns the most frequent search terms. Admin only.
func (cc *ClientController) TopSearchTerms(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Top search terms",
		Data:    cc.Analytics.TopTerms(20),
	})
}

// GetClientBalance returns the running balance of one client
func (cc *ClientController) GetClientBalance(c echo.Context) error {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	filter, err := visibilityFilter(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}
	filter["_id"] = clientID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var client models.Client
	err = config.GetCollection(cc.DB, "clients").FindOne(ctx, filter).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Client not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch client",
		})
	}

	cursor, err := config.GetCollection(cc.DB, "ledger_records").Find(ctx, bson.M{"subjectId": clientID})
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Balance computed successfully",
		Data: map[string]interface{}{
			"clientId":  client.ID,
			"legalName": client.LegalName,
			"balance":   utils.RunningBalance(records),
			"records":   len(records),
		},
	})
}
