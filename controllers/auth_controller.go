package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/middleware"
	"github.com/gestioncomercial/gestion_backend/models"
	"github.com/gestioncomercial/gestion_backend/utils"
)

// AuthController handles login and session validation
type AuthController struct {
	DB *mongo.Client
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{DB: db}
}

// Login authenticates a user and returns a JWT pair
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid email or password",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find user",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User account is inactive",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	// Update last login time
	_, err = config.GetCollection(ac.DB, "users").UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("Failed to update last login time: %v", err)
	}

	// Remove password from response
	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// ValidateToken checks the Authorization header and reports whether the
// session is still valid.
func (ac *AuthController) ValidateToken(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	result, err := utils.ValidateToken(tokenString, ac.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to validate token",
		})
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, models.Response{
		Status:  status,
		Message: result.Message,
		Data:    result,
	})
}
