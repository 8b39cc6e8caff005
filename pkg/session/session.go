// Package session holds the client's authentication state: an explicit
// two-state machine (anonymous / authenticated) persisted to disk on
// every transition and rehydrated at startup. Stores are plain values
// constructed with their collaborators so tests can build isolated
// instances.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/credentials"
	"github.com/lumen-social/cli/pkg/logger"
)

// ErrAnonymous is returned by operations that need an authenticated user.
var ErrAnonymous = errors.New("not authenticated")

// Authenticator is the slice of the API the store needs. The default is
// the real api package; tests substitute a fake.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Persister stores the session durably between runs.
type Persister interface {
	Load() (*credentials.Session, error)
	Save(*credentials.Session) error
	Delete() error
}

type apiAuthenticator struct{}

func (apiAuthenticator) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	return api.Login(ctx, username, password)
}

func (apiAuthenticator) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return api.Register(ctx, req)
}

func (apiAuthenticator) Logout(ctx context.Context) error {
	return api.Logout(ctx)
}

type filePersister struct{}

func (filePersister) Load() (*credentials.Session, error) { return credentials.Load() }
func (filePersister) Save(s *credentials.Session) error   { return credentials.Save(s) }
func (filePersister) Delete() error                       { return credentials.Delete() }

// Store is the auth session store. The user pointer is the single
// source of the machine's state: nil means anonymous. There is no
// separate authenticated flag to fall out of sync.
type Store struct {
	mu      sync.Mutex
	auth    Authenticator
	persist Persister
	user    *api.User
	token   string
	lastErr string
}

// New builds a store with explicit collaborators.
func New(auth Authenticator, persist Persister) *Store {
	return &Store{auth: auth, persist: persist}
}

// Default builds a store wired to the real API and the session file.
// It registers itself as the client's 401 handler so a rejected request
// anywhere logs the session out locally.
func Default() *Store {
	s := New(apiAuthenticator{}, filePersister{})
	client.OnSessionExpired(s.Invalidate)
	return s
}

// Rehydrate restores persisted state from a previous run. Expired or
// unreadable sessions leave the store anonymous.
func (s *Store) Rehydrate() {
	sess, err := s.persist.Load()
	if err != nil {
		logger.Warn("Failed to load persisted session", "error", err)
		return
	}
	if sess == nil || !sess.IsValid() {
		return
	}

	s.mu.Lock()
	user := sess.User
	s.user = &user
	s.token = sess.Token
	s.mu.Unlock()

	client.SetAuthToken(sess.Token)
	logger.Debug("Session rehydrated", "username", user.Username)
}

// Login authenticates and transitions to the authenticated state. On
// failure the store stays anonymous, records the error message, and the
// error is returned so callers can react.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.establish(resp)
	return nil
}

// Register creates an account; same contract as Login.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) error {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.establish(resp)
	return nil
}

func (s *Store) establish(resp *api.AuthResponse) {
	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.token = resp.Token
	s.lastErr = ""
	s.mu.Unlock()

	client.SetAuthToken(resp.Token)
	s.save()
}

// Logout tells the server best-effort, then unconditionally clears local
// state. The client must never look authenticated after logout, even
// when the network call fails.
func (s *Store) Logout(ctx context.Context) {
	if s.IsAuthenticated() {
		if err := s.auth.Logout(ctx); err != nil {
			logger.Warn("Server logout failed, clearing local session anyway", "error", err)
		}
	}
	s.Invalidate()
}

// Invalidate drops to the anonymous state without a remote call. Also
// used as the 401 handler.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	client.ClearAuthToken()
	if err := s.persist.Delete(); err != nil {
		logger.Warn("Failed to delete persisted session", "error", err)
	}
}

// CurrentUser returns a copy of the authenticated user, or nil when
// anonymous.
func (s *Store) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	user.Followers = append([]string(nil), s.user.Followers...)
	user.Following = append([]string(nil), s.user.Following...)
	return &user
}

// IsAuthenticated reports whether a user is logged in. Derived from the
// user pointer, so it cannot disagree with CurrentUser.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Token returns the current bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// UpdateProfile shallow-merges non-empty fields into the cached user.
// No-op when anonymous.
func (s *Store) UpdateProfile(fields api.UpdateProfileRequest) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	if fields.FullName != "" {
		s.user.FullName = fields.FullName
	}
	if fields.Bio != "" {
		s.user.Bio = fields.Bio
	}
	if fields.Website != "" {
		s.user.Website = fields.Website
	}
	if fields.AvatarURL != "" {
		s.user.AvatarURL = fields.AvatarURL
	}
	s.mu.Unlock()

	s.save()
}

// UpdateFollowing adds or removes targetID from the cached user's
// following set. Idempotent: adding a present id or removing an absent
// one changes nothing. No-op when anonymous.
func (s *Store) UpdateFollowing(targetID string, following bool) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	if following {
		if !contains(s.user.Following, targetID) {
			s.user.Following = append(s.user.Following, targetID)
		}
	} else {
		s.user.Following = remove(s.user.Following, targetID)
	}
	s.mu.Unlock()

	s.save()
}

// Err returns the last recorded error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr clears the recorded error message.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

func (s *Store) save() {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	sess := &credentials.Session{Token: s.token, User: *s.user, SavedAt: time.Now()}
	s.mu.Unlock()

	if err := s.persist.Save(sess); err != nil {
		logger.Warn("Failed to persist session", "error", err)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
