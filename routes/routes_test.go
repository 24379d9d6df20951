package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestioncomercial/gestion_backend/middleware"
	"github.com/gestioncomercial/gestion_backend/models"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newTestServer registers the full route table without backing stores. The
// role-gating middleware rejects before any handler touches the database,
// so these tests never need one.
func newTestServer(t *testing.T) *echo.Echo {
	t.Setenv("JWT_SECRET", "test-secret")

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	SetupRoutes(e, nil, nil)
	return e
}

func tokenFor(t *testing.T, role string) string {
	token, _, err := middleware.GenerateJWT("64b0c1e2a3d4e5f601234567", "user@example.com", role)
	require.NoError(t, err)
	return token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLedgerMutationsRequireAdmin(t *testing.T) {
	e := newTestServer(t)
	salesperson := tokenFor(t, models.RoleSalesperson)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/ledger"},
		{http.MethodPut, "/api/ledger/64b0c1e2a3d4e5f601234567"},
		{http.MethodDelete, "/api/ledger/64b0c1e2a3d4e5f601234567"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(e, tt.method, tt.path, salesperson, "{}")
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestLedgerCreateReachableForAdmin(t *testing.T) {
	e := newTestServer(t)
	admin := tokenFor(t, models.RoleAdmin)

	// an empty body fails the handler's own request validation, which
	// proves the admin passed the role gate without needing a database
	rec := doJSON(e, http.MethodPost, "/api/ledger", admin, "{}")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOnlyAreasRejectSalesperson(t *testing.T) {
	e := newTestServer(t)
	salesperson := tokenFor(t, models.RoleSalesperson)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/clients"},
		{http.MethodDelete, "/api/clients/64b0c1e2a3d4e5f601234567"},
		{http.MethodPost, "/api/checks"},
		{http.MethodPost, "/api/users"},
		{http.MethodPost, "/api/expenses"},
		{http.MethodPost, "/api/commission-periods"},
		{http.MethodPost, "/api/commission-periods/64b0c1e2a3d4e5f601234567/settle"},
		{http.MethodDelete, "/api/settlements/64b0c1e2a3d4e5f601234567"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(e, tt.method, tt.path, salesperson, "{}")
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/api/ledger", "/api/clients", "/api/dashboard/summary"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
