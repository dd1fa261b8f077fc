package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

const unauthorizedBody = `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`

func signToken(t *testing.T, claims *models.Claims, key []byte, method jwt.SigningMethod) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return "Bearer " + token
}

func staffClaims(userID uuid.UUID, ttl time.Duration) *models.Claims {
	now := time.Now()

	return &models.Claims{
		UserID:  userID,
		Email:   "staff@example.com",
		IsStaff: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "claims should be on the context")
		assert.Equal(t, userID, claims.UserID)
		assert.True(t, claims.Actor().IsStaff)

		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Valid Token",
			authHeader:     signToken(t, staffClaims(userID, time.Hour), testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail - Missing Authorization Header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Authorization header is required"}}`,
		},
		{
			name:           "Fail - Not A Bearer Token",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid authorization format"}}`,
		},
		{
			name:           "Fail - Extra Segments",
			authHeader:     "Bearer a b",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid authorization format"}}`,
		},
		{
			name:           "Fail - Empty Token",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Malformed Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Wrong Signing Key",
			authHeader:     signToken(t, staffClaims(userID, time.Hour), []byte("different-secret-key-0987654321"), jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Wrong Signing Method",
			authHeader:     signToken(t, staffClaims(userID, time.Hour), testJwtKey, jwt.SigningMethodHS512),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Expired Token",
			authHeader:     signToken(t, staffClaims(userID, -time.Hour), testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Token Without Expiry",
			authHeader:     signToken(t, &models.Claims{UserID: userID, IsStaff: true}, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, slog.New(slog.DiscardHandler)))
			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(next).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name           string
		claims         *models.Claims
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Staff Passes Through",
			claims:         &models.Claims{UserID: uuid.New(), IsStaff: true},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Fail - Regular User Forbidden",
			claims:         &models.Claims{UserID: uuid.New()},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"success": false, "error": {"code": "FORBIDDEN", "message": "Staff privileges required"}}`,
		},
		{
			name:           "Fail - No Claims In Context",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Unauthorized"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil)
			if tc.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, tc.claims))
			}
			rr := httptest.NewRecorder()

			middleware.RequireStaff(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}
