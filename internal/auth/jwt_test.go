package auth

import (
	"testing"
	"time"

	"saha-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret-test-secret-test-secret!"
	user := &models.User{
		ID:    7,
		Email: "ali.kaya@saha.local",
		Role:  models.RoleFieldRep,
	}

	tokenStr, err := GenerateToken(secret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ali.kaya@saha.local", claims.Email)
	assert.Equal(t, models.RoleFieldRep, claims.Role)

	// 1 günlük geçerlilik
	require.NotNil(t, claims.ExpiresAt)
	left := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, left, 23*time.Hour)
	assert.LessOrEqual(t, left, 24*time.Hour)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 7, Email: "ali.kaya@saha.local", Role: models.RoleManager}

	tokenStr, err := GenerateToken("test-secret-test-secret-test-secret!", user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("baska-bir-secret-baska-bir-secret!!!"), nil
	})
	assert.Error(t, err)
}
