package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionExpiredHookFiresOncePer401Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	defer Reset()

	Reset()
	fired := 0
	OnSessionExpired(func() { fired++ })
	GetClient().SetBaseURL(srv.URL)

	// Several rejected requests in a row invalidate once.
	for i := 0; i < 3; i++ {
		_, err := GetClient().R().Get("/api/feed")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fired)

	// A fresh login re-arms the hook for the next expiry.
	SetAuthToken("new-token")
	_, err := GetClient().R().Get("/api/feed")
	require.NoError(t, err)
	assert.Equal(t, 2, fired)
}

func TestSessionExpiredHookNotFiredForOtherStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	defer Reset()

	Reset()
	fired := 0
	OnSessionExpired(func() { fired++ })
	GetClient().SetBaseURL(srv.URL)

	_, err := GetClient().R().Get("/api/admin/stats")
	require.NoError(t, err)
	assert.Equal(t, 0, fired, "403 is an authorization failure, not an expired session")
}

func TestAuthTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()
	defer Reset()

	Reset()
	GetClient().SetBaseURL(srv.URL)
	SetAuthToken("tok-1")

	_, err := GetClient().R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)

	ClearAuthToken()
	_, err = GetClient().R().Get("/")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	seen := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("X-Request-ID")] = true
	}))
	defer srv.Close()
	defer Reset()

	Reset()
	GetClient().SetBaseURL(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := GetClient().R().Get("/")
		require.NoError(t, err)
	}

	delete(seen, "")
	assert.Len(t, seen, 3, "every request carries a distinct id")
}
