// controllers/user_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/models"
	"github.com/gestioncomercial/gestion_backend/utils"
)

// UserController handles user (salesperson/admin) administration
type UserController struct {
	DB *mongo.Client
}

// NewUserController creates a new user controller
func NewUserController(db *mongo.Client) *UserController {
	return &UserController{DB: db}
}

// CreateUser registers a salesperson or admin. Admin only.
func (uc *UserController) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, password (8+ chars), full name and role are required; commission must be 0-100",
		})
	}

	basis := req.CommissionBasis
	if basis == "" {
		basis = models.CommissionBasisSales
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:                primitive.NewObjectID(),
		Email:             strings.ToLower(req.Email),
		Password:          string(hashedPassword),
		FullName:          req.FullName,
		Role:              req.Role,
		Phone:             req.Phone,
		IsActive:          true,
		CommissionPercent: req.CommissionPercent,
		CommissionBasis:   basis,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.GetCollection(uc.DB, "users").InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A user with this email already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Data:    user,
	})
}

// GetUsers lists all users without passwords. Admin only.
func (uc *UserController) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "fullName", Value: 1}}).
		SetProjection(bson.M{"password": 0})
	cursor, err := config.GetCollection(uc.DB, "users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode users",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// GetProfile returns the authenticated user's own record
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

// UpdateUser applies a partial update to a user. Admin only.
func (uc *UserController) UpdateUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission must be between 0 and 100 and the basis sales, payments or both",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Email != nil {
		update["email"] = strings.ToLower(*req.Email)
	}
	if req.FullName != nil {
		update["fullName"] = *req.FullName
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if req.CommissionPercent != nil {
		update["commissionPercent"] = *req.CommissionPercent
	}
	if req.CommissionBasis != nil {
		update["commissionBasis"] = *req.CommissionBasis
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to hash password",
			})
		}
		update["password"] = string(hashedPassword)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection(uc.DB, "users").UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update user",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User updated successfully",
	})
}

// DeleteUser removes a user. Blocked while clients are assigned to them,
// so ledger history never points at a missing owner. Admin only.
func (uc *UserController) DeleteUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.GetCollection(uc.DB, "clients").CountDocuments(ctx, bson.M{"ownerId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check assigned clients",
		})
	}
	if count > 0 {
		return errorResponse(c, &models.BusinessRuleViolation{Message: "Cannot delete a user with clients assigned"})
	}

	result, err := config.GetCollection(uc.DB, "users").DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete user",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User deleted successfully",
	})
}
