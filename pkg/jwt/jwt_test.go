package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires key", func(t *testing.T) {
		t.Parallel()
		_, err := jwt.New(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)

		_, err = jwt.NewFromString("")
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("ttl bounds", func(t *testing.T) {
		t.Parallel()
		for _, ttl := range []time.Duration{time.Minute, 59 * time.Minute, 25 * time.Hour} {
			_, err := jwt.New(testKey, jwt.WithTTL(ttl))
			assert.ErrorIs(t, err, jwt.ErrInvalidTTL, ttl.String())
		}
		for _, ttl := range []time.Duration{time.Hour, 12 * time.Hour, 24 * time.Hour} {
			svc, err := jwt.New(testKey, jwt.WithTTL(ttl))
			require.NoError(t, err, ttl.String())
			assert.Equal(t, ttl, svc.TTL())
		}
	})

	t.Run("default ttl is one hour", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New(testKey)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.TTL())
	})
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, err := jwt.New(testKey, jwt.WithTTL(2*time.Hour), jwt.WithIssuer("webproject"), jwt.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	token, err := svc.Issue("user-1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "webproject", claims.Issuer)
	assert.Equal(t, now.Add(2*time.Hour), claims.ExpiresAt.Time)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		past, err := jwt.New(testKey, jwt.WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) }))
		require.NoError(t, err)

		token, err := past.Issue("user-1", "a@x.com")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other, err := jwt.NewFromString("another-secret-another-secret-xx")
		require.NoError(t, err)

		token, err := other.Issue("user-1", "a@x.com")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()
		token, err := svc.Issue("user-1", "a@x.com")
		require.NoError(t, err)

		other, err := svc.Issue("user-2", "b@x.com")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		otherParts := strings.Split(other, ".")
		forged := parts[0] + "." + otherParts[1] + "." + parts[2]

		_, err = svc.Parse(forged)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("none algorithm", func(t *testing.T) {
		t.Parallel()
		claims := jwt.Claims{
			ID: "user-1",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("missing exp", func(t *testing.T) {
		t.Parallel()
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{ID: "user-1"}).SignedString(testKey)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrMalformedToken)
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		claims := jwt.Claims{
			Email: "a@x.com",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(testKey)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrMalformedToken)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		for _, token := range []string{"", "abc", "a.b.c", "a.b"} {
			_, err := svc.Parse(token)
			assert.ErrorIs(t, err, jwt.ErrMalformedToken, token)
		}
	})
}
