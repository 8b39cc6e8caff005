package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/logger"
)

var httpClient *resty.Client
var onSessionExpired func()
var expiredFired bool

// Init initializes the HTTP client
func Init() {
	httpClient = resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Lumen-CLI/0.1.0")

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		req.Header.Set("X-Request-ID", uuid.NewString())
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())

		// A 401 from any endpoint means the server no longer honors our
		// session. Invalidate it locally so the client never keeps acting
		// authenticated after the server has disagreed. Fired once per
		// expiry; re-armed when a new token is set.
		if resp.StatusCode() == 401 && onSessionExpired != nil && !expiredFired {
			expiredFired = true
			logger.Warn("Session rejected by server, invalidating local session")
			onSessionExpired()
		}
		return nil
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	expiredFired = false
	httpClient.SetHeader("Authorization", "Bearer "+token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	if httpClient == nil {
		return
	}
	httpClient.Header.Del("Authorization")
}

// OnSessionExpired registers the hook invoked when any request comes back
// with a 401. The hook must be safe to call from a response handler.
func OnSessionExpired(fn func()) {
	onSessionExpired = fn
}

// Reset discards the client so the next GetClient re-reads config.
// Used by tests and by logout.
func Reset() {
	httpClient = nil
	expiredFired = false
}
