// Package websocket maintains the live event connection: new chat
// messages, notifications, and post engagement updates pushed by the
// server while the CLI watches a feed or a conversation.
package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
	"github.com/lumen-social/cli/pkg/logger"
)

// EventType labels a server push.
type EventType string

const (
	EventNewPost      EventType = "new_post"
	EventPostLiked    EventType = "post_liked"
	EventPostSaved    EventType = "post_saved"
	EventPostDeleted  EventType = "post_deleted"
	EventNewComment   EventType = "new_comment"
	EventCommentLiked EventType = "comment_liked"
	EventNewMessage   EventType = "new_message"
	EventNotification EventType = "notification"
	EventUserFollowed EventType = "user_followed"
	EventHeartbeat    EventType = "heartbeat"
	EventError        EventType = "error"
)

// Event is one message from the server.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client is a reconnecting websocket consumer. Handlers run on the read
// loop goroutine and must not block.
type Client struct {
	mu        sync.RWMutex
	url       string
	token     string
	conn      *websocket.Conn
	handlers  map[EventType][]func(Event)
	ctx       context.Context
	cancel    context.CancelFunc
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewClient builds a client for the given ws:// or wss:// URL.
func NewClient(url string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:       url,
		handlers:  make(map[EventType][]func(Event)),
		ctx:       ctx,
		cancel:    cancel,
		baseDelay: 2 * time.Second,
		maxDelay:  30 * time.Second,
	}
}

// On subscribes a handler to an event type.
func (c *Client) On(t EventType, fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[t] = append(c.handlers[t], fn)
}

// Connect dials the server and starts the read loop. The bearer token
// authenticates the connection.
func (c *Client) Connect(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	conn, err := c.dial()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop()
	logger.Debug("WebSocket connected", "url", c.url)
	return nil
}

func (c *Client) dial() (*websocket.Conn, error) {
	header := make(map[string][]string)
	c.mu.RLock()
	if c.token != "" {
		header["Authorization"] = []string{"Bearer " + c.token}
	}
	c.mu.RUnlock()

	dialer := websocket.Dialer{HandshakeTimeout: 15 * time.Second}
	conn, _, err := dialer.DialContext(c.ctx, c.url, header)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	return conn, nil
}

// Close tears the connection down and stops reconnecting.
func (c *Client) Close() {
	c.cancel()
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
	logger.Debug("WebSocket closed")
}

func (c *Client) readLoop() {
	delay := c.baseDelay
	for c.ctx.Err() == nil {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			logger.Warn("WebSocket read failed, reconnecting", "error", err)
			time.Sleep(delay)
			if delay *= 2; delay > c.maxDelay {
				delay = c.maxDelay
			}
			next, derr := c.dial()
			if derr != nil {
				logger.Warn("WebSocket reconnect failed", "error", derr)
				continue
			}
			c.mu.Lock()
			c.conn = next
			c.mu.Unlock()
			delay = c.baseDelay
			continue
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Warn("Discarding malformed event", "error", err)
			continue
		}
		c.dispatch(event)
	}
}

func (c *Client) dispatch(event Event) {
	c.mu.RLock()
	handlers := append([]func(Event){}, c.handlers[event.Type]...)
	c.mu.RUnlock()
	for _, fn := range handlers {
		fn(event)
	}
}
