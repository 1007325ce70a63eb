package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwtutil "asset-dashboard/backend/app/jwt"
	"asset-dashboard/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	signer := &jwtutil.Signer{Secret: []byte("k"), Issuer: "test", ExpMin: 5}
	mw := &Auth{Signer: signer}

	var seen *jwtutil.Claims
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, _, err := signer.Sign(&models.User{ID: 3, Username: "ops", Role: models.RoleOperator})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ops", seen.Username)
}

func TestRequireAdminRejectsOperators(t *testing.T) {
	signer := &jwtutil.Signer{Secret: []byte("k"), Issuer: "test", ExpMin: 5}
	h := (&Auth{Signer: signer}).RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	tok, _, err := signer.Sign(&models.User{ID: 3, Username: "ops", Role: models.RoleOperator})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	tok, _, err = signer.Sign(&models.User{ID: 1, Username: "root", Role: models.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingAssignsRequestID(t *testing.T) {
	var id string
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", id)
}
