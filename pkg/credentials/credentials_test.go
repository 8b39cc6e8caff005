package credentials

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumen-social/cli/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func tokenWithoutExp(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestExpiresAtReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	sess := &Session{Token: tokenWithExp(t, exp)}

	assert.Equal(t, exp.Unix(), sess.ExpiresAt().Unix())
}

func TestExpiresAtZeroWithoutClaim(t *testing.T) {
	sess := &Session{Token: tokenWithoutExp(t)}
	assert.True(t, sess.ExpiresAt().IsZero())
}

func TestExpiresAtZeroForGarbageToken(t *testing.T) {
	sess := &Session{Token: "not-a-jwt"}
	assert.True(t, sess.ExpiresAt().IsZero())
}

func TestIsExpired(t *testing.T) {
	live := &Session{Token: tokenWithExp(t, time.Now().Add(time.Hour))}
	assert.False(t, live.IsExpired())

	stale := &Session{Token: tokenWithExp(t, time.Now().Add(-time.Hour))}
	assert.True(t, stale.IsExpired())

	// No expiry claim means the token never expires client-side.
	eternal := &Session{Token: tokenWithoutExp(t)}
	assert.False(t, eternal.IsExpired())
}

func TestIsValid(t *testing.T) {
	good := &Session{
		Token: tokenWithExp(t, time.Now().Add(time.Hour)),
		User:  api.User{ID: "u1"},
	}
	assert.True(t, good.IsValid())

	assert.False(t, (&Session{User: api.User{ID: "u1"}}).IsValid(), "empty token")
	assert.False(t, (&Session{Token: "tok"}).IsValid(), "missing user id")

	expired := &Session{
		Token: tokenWithExp(t, time.Now().Add(-time.Minute)),
		User:  api.User{ID: "u1"},
	}
	assert.False(t, expired.IsValid())
}
