package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestioncomercial/gestion_backend/models"
)

func testContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorResponseStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			"validation error is a bad request",
			&models.ValidationError{Field: "date", Message: "invalid date, expected YYYY-MM-DD"},
			http.StatusBadRequest,
		},
		{
			"business rule violation is a conflict",
			&models.BusinessRuleViolation{Message: "Cannot delete a user with clients assigned"},
			http.StatusConflict,
		},
		{
			"transport error is a bad gateway",
			models.NewTransportError("fetch page", errors.New("connection reset")),
			http.StatusBadGateway,
		},
		{
			"unknown error is internal",
			errors.New("boom"),
			http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := testContext()

			require.NoError(t, errorResponse(c, tt.err))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("date", "2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), date)

	_, err = parseDate("dueDate", "05/03/2026")
	require.Error(t, err)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "dueDate", validationErr.Field)
}
