package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertbook/internal/model"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, CheckPassword("", "anything"))
}

func TestTokens(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Make("user-1", model.RoleExpert)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleExpert, claims.Role)
}

func TestTokensRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := NewTokens("other", time.Hour).Make("u", model.RoleUser)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokens("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		raw, err := old.Make("u", model.RoleUser)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestNewTokensDefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokens("s", 0).ttl)
}
