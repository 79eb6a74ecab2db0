package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.Generate(7, "test@example.com", "Test User")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
}

func TestJWTService_Verify_FailsClosed(t *testing.T) {
	service := NewJWTService("test-secret")

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			UserID: 7,
			Email:  "test@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			},
		})
		tokenString, err := expired.SignedString([]byte("test-secret"))
		assert.NoError(t, err)

		claims, err := service.Verify(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := service.Generate(7, "test@example.com", "Test User")
		assert.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		claims, err := service.Verify(tampered)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.Generate(7, "test@example.com", "Test User")
		assert.NoError(t, err)

		claims, err := service.Verify(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("garbage token", func(t *testing.T) {
		claims, err := service.Verify("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
