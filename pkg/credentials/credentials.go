package credentials

import (
	"encoding/json"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
)

// Session is the persisted authenticated identity: the bearer token and
// a cached copy of the user. The cached user is refreshed on login and
// mutated locally for immediate feedback, but the server stays the
// source of truth.
type Session struct {
	Token   string    `json:"token"`
	User    api.User  `json:"user"`
	SavedAt time.Time `json:"saved_at"`
}

// Load loads the session from disk. Returns (nil, nil) when no session
// has been saved yet.
func Load() (*Session, error) {
	path := config.GetSessionPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Save writes the session to disk with owner-only permissions.
func Save(sess *Session) error {
	path := config.GetSessionPath()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Delete removes the session from disk. Missing file is not an error;
// logout must succeed even when nothing was persisted.
func Delete() error {
	err := os.Remove(config.GetSessionPath())
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// ExpiresAt derives the token's expiry from its exp claim. The token is
// decoded without signature verification; the client holds no signing
// key and only needs the timestamp. Zero time means no expiry claim.
func (s *Session) ExpiresAt() time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// IsExpired checks whether the token's exp claim has passed. Tokens
// without an expiry claim never expire client-side.
func (s *Session) IsExpired() bool {
	exp := s.ExpiresAt()
	return !exp.IsZero() && time.Now().After(exp)
}

// IsValid checks whether the session is usable.
func (s *Session) IsValid() bool {
	return s.Token != "" && s.User.ID != "" && !s.IsExpired()
}
