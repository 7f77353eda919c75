package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.ErrorIs(t, h.Compare(hash, "secret2"), ErrPasswordMismatch)
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, NewHasher(100), NewHasher(0))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	id := uuid.New()

	token, expiresAt, err := m.Issue(id, "ann@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	session, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, session.UserID)
	assert.Equal(t, "ann@example.com", session.Email)
}

func TestTokenManager_Rejects(t *testing.T) {
	id := uuid.New()
	m := NewTokenManager("test-secret", time.Hour)

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.Issue(id, "ann@example.com")
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("another-secret", time.Hour)
		token, _, err := other.Issue(id, "ann@example.com")
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := Claims{UserID: id.String(), RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSession_Context(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	s := Session{UserID: uuid.New(), Email: "ann@example.com"}
	got, ok := SessionFrom(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = SessionFrom(WithSession(context.Background(), Session{}))
	assert.False(t, ok)
}
