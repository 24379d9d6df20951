// utils/auth.go
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/middleware"
	"github.com/gestioncomercial/gestion_backend/models"
)

// ValidateTokenResponse represents the response for token validation
type ValidateTokenResponse struct {
	Valid     bool         `json:"valid"`
	User      *models.User `json:"user,omitempty"`
	Message   string       `json:"message,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

// ValidateToken validates a JWT token and returns user information if
// valid. The frontend uses it to check session validity on startup.
func ValidateToken(tokenString string, db *mongo.Client) (*ValidateTokenResponse, error) {
	if tokenString == "" {
		return &ValidateTokenResponse{Valid: false, Message: "No token provided"}, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &middleware.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(middleware.GetJWTSecret()), nil
	})
	if err != nil {
		return &ValidateTokenResponse{Valid: false, Message: "Invalid token: " + err.Error()}, nil
	}
	if !token.Valid {
		return &ValidateTokenResponse{Valid: false, Message: "Token is not valid"}, nil
	}

	claims, ok := token.Claims.(*middleware.JwtCustomClaims)
	if !ok {
		return &ValidateTokenResponse{Valid: false, Message: "Invalid token claims"}, nil
	}

	if claims.ExpiresAt > 0 && time.Now().Unix() > claims.ExpiresAt {
		return &ValidateTokenResponse{Valid: false, Message: "Token has expired"}, nil
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return &ValidateTokenResponse{Valid: false, Message: "Invalid user ID format"}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &ValidateTokenResponse{Valid: false, Message: "User not found"}, nil
		}
		return &ValidateTokenResponse{Valid: false, Message: "Error retrieving user: " + err.Error()}, nil
	}

	if !user.IsActive {
		return &ValidateTokenResponse{Valid: false, Message: "User account is inactive"}, nil
	}

	// Don't return password in response
	user.Password = ""

	var expiresAt *time.Time
	if claims.ExpiresAt > 0 {
		expTime := time.Unix(claims.ExpiresAt, 0)
		expiresAt = &expTime
	}

	return &ValidateTokenResponse{
		Valid:     true,
		User:      &user,
		Message:   "Token is valid",
		ExpiresAt: expiresAt,
	}, nil
}

// GetUserFromToken extracts the authenticated user's id from the JWT and
// loads the full user from the database.
func GetUserFromToken(c echo.Context, db *mongo.Client) (*models.User, error) {
	userIDHex, err := middleware.ExtractUserID(c)
	if err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, errors.New("invalid user ID format")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, errors.New("error retrieving user")
	}

	user.Password = ""
	return &user, nil
}

// GetUserIDFromToken extracts the user ID from the JWT token
func GetUserIDFromToken(c echo.Context) (primitive.ObjectID, error) {
	userIDHex, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.ObjectID{}, echo.ErrUnauthorized
	}
	return primitive.ObjectIDFromHex(userIDHex)
}

// IsAdmin reports whether the request was made by an administrator.
func IsAdmin(c echo.Context) bool {
	return middleware.ExtractRole(c) == models.RoleAdmin
}
