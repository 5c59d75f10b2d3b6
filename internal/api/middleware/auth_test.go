package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-connect/backend/internal/api/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedHandler() (http.Handler, *string) {
	var seenUserID string
	handler := middleware.AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			seenUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenUserID
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	handler, seenUserID := protectedHandler()

	token := signToken(t, jwt.MapClaims{
		"userId": "user-42",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", *seenUserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler, _ := protectedHandler()

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	handler, _ := protectedHandler()

	token := signToken(t, jwt.MapClaims{
		"userId": "user-42",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, "a-different-secret")

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	handler, _ := protectedHandler()

	token := signToken(t, jwt.MapClaims{
		"userId": "user-42",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NoUserClaim(t *testing.T) {
	handler, _ := protectedHandler()

	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	handler, _ := protectedHandler()

	req := httptest.NewRequest("GET", "/api/appointments/my", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
