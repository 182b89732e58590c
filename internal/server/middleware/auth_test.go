package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator accepts one known token
type fakeValidator struct {
	token  string
	userID uuid.UUID
}

type fakeClaims struct {
	userID uuid.UUID
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }

func (v *fakeValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if tokenString != v.token {
		return nil, fmt.Errorf("invalid token")
	}
	return &fakeClaims{userID: v.userID}, nil
}

func protectedHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{token: "good-token", userID: userID}
	handler := AuthMiddleware(validator)(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/stats", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareCaseInsensitiveBearer(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{token: "good-token", userID: userID}
	handler := AuthMiddleware(validator)(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/stats", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	validator := &fakeValidator{token: "good-token", userID: uuid.New()}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	validator := &fakeValidator{token: "good-token", userID: uuid.New()}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"good-token", "Basic abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest("GET", "/stats", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	validator := &fakeValidator{token: "good-token", userID: uuid.New()}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/stats", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserIDWithoutContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/stats", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
