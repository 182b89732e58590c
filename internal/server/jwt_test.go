package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-for-unit-tests",
		ExpirationHours: 1,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestValidateEmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	assert.Error(t, err)
}

func TestValidateMalformedToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	service := testJWTService()
	now := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-for-unit-tests"))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	// alg=none tokens must never validate
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}

func TestAsTokenValidator(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	getter, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
