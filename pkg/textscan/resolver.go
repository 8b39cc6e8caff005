package textscan

import (
	"context"
	"sync"

	"github.com/lumen-social/cli/pkg/api"
)

// LookupFunc resolves a username to a user id remotely.
type LookupFunc func(ctx context.Context, username string) (string, error)

// Resolver maps mention usernames to user ids through a local cache
// with on-demand lookup. Unknown mentions stay renderable; resolution
// happens lazily when the mention is activated.
type Resolver struct {
	mu     sync.Mutex
	cache  map[string]string
	lookup LookupFunc
}

// NewResolver builds a resolver with an explicit lookup function.
func NewResolver(lookup LookupFunc) *Resolver {
	return &Resolver{cache: make(map[string]string), lookup: lookup}
}

// DefaultResolver builds a resolver backed by the real user lookup
// endpoint.
func DefaultResolver() *Resolver {
	return NewResolver(func(ctx context.Context, username string) (string, error) {
		user, err := api.GetUserByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	})
}

// Prime seeds the cache, e.g. from users already present in fetched
// posts and comments.
func (r *Resolver) Prime(username, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[username] = userID
}

// Resolve returns the user id for a username, hitting the cache first
// and falling back to a remote lookup whose result is cached.
func (r *Resolver) Resolve(ctx context.Context, username string) (string, error) {
	r.mu.Lock()
	if id, ok := r.cache[username]; ok {
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	id, err := r.lookup(ctx, username)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[username] = id
	r.mu.Unlock()
	return id, nil
}

// Cached returns the cached id without a network call, with false when
// the username has not been resolved yet.
func (r *Resolver) Cached(username string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.cache[username]
	return id, ok
}
