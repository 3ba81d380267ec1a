package middleware

import (
	"testing"
	"time"

	"studyhub/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseToken_RoundTrip(t *testing.T) {
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"role":    models.RoleTeacher,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	userID, role, err := ParseToken(signed, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, models.RoleTeacher, role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"role":    models.RoleStudent,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := ParseToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"role":    models.RoleStudent,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, _, err := ParseToken(signed, "test-secret")
	assert.Error(t, err)
}

func TestParseToken_MissingUserID(t *testing.T) {
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"role": models.RoleStudent,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := ParseToken(signed, "test-secret")
	assert.Error(t, err)
}
