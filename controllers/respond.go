package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestioncomercial/gestion_backend/models"
)

// errorResponse maps a domain error to its HTTP status and renders the
// standard envelope. Validation failures are 400, blocked business rules
// 409, store failures 502, anything else 500.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var validationErr *models.ValidationError
	var ruleErr *models.BusinessRuleViolation
	var transportErr *models.TransportError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &ruleErr):
		status = http.StatusConflict
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
	}

	return c.JSON(status, models.Response{
		Status:  status,
		Message: err.Error(),
	})
}

// parseDate parses a YYYY-MM-DD request field, reporting failures as a
// ValidationError naming the field.
func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: field, Message: "invalid date, expected YYYY-MM-DD"}
	}
	return date, nil
}
