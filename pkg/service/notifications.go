package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	json "github.com/json-iterator/go"
	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/logger"
	"github.com/lumen-social/cli/pkg/pager"
	"github.com/lumen-social/cli/pkg/session"
	"github.com/lumen-social/cli/pkg/websocket"
)

// NotificationService lists notifications and streams live ones.
type NotificationService struct {
	sessions *session.Store
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{sessions: session.Default()}
}

// List prints notifications page by page until exhausted or the page
// limit is hit. unreadOnly filters read entries client-side.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool, maxPages int) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	p := pager.New(func(ctx context.Context, page, pageSize int) ([]api.Notification, bool, error) {
		resp, err := api.ListNotifications(ctx, page, pageSize)
		if err != nil {
			return nil, false, err
		}
		return resp.Notifications, resp.HasMore(), nil
	}, config.GetInt("api.page_size"))

	if err := p.LoadInitial(ctx); err != nil {
		formatter.PrintError("Failed to fetch notifications: %v", err)
		return err
	}
	for p.HasMore() && (maxPages <= 0 || p.Page() < maxPages) {
		if err := p.LoadMore(ctx); err != nil {
			formatter.PrintError("Failed to fetch notifications: %v", err)
			return err
		}
	}

	shown, unread := 0, 0
	for _, n := range p.Items() {
		if !n.Read {
			unread++
		}
		if unreadOnly && n.Read {
			continue
		}
		s.print(n)
		shown++
	}
	if shown == 0 {
		fmt.Println("No notifications")
	}
	if unread > 0 {
		formatter.PrintInfo("%d unread", unread)
	}
	return nil
}

// MarkRead marks one notification as read, or all of them when id is
// empty.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	var err error
	if id == "" {
		err = api.MarkAllNotificationsRead(ctx)
	} else {
		err = api.MarkNotificationRead(ctx, id)
	}
	if err != nil {
		formatter.PrintError("Failed to mark read: %v", err)
		return err
	}
	formatter.PrintSuccess("Marked as read")
	return nil
}

// Watch connects to the event stream and prints notifications as they
// arrive, until interrupted.
func (s *NotificationService) Watch(ctx context.Context) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	ws := websocket.NewClient(config.GetString("ws.url"))
	ws.On(websocket.EventNotification, func(e websocket.Event) {
		var n api.Notification
		if err := json.Unmarshal(e.Payload, &n); err != nil {
			logger.Debug("Dropping malformed notification event", "error", err)
			return
		}
		s.print(n)
	})
	ws.On(websocket.EventNewMessage, func(e websocket.Event) {
		var m api.Message
		if err := json.Unmarshal(e.Payload, &m); err != nil {
			return
		}
		formatter.PrintInfo("New message in conversation %s", m.ConversationID)
	})

	if err := ws.Connect(s.sessions.Token()); err != nil {
		formatter.PrintError("Failed to connect: %v", err)
		return err
	}
	defer ws.Close()

	formatter.PrintInfo("Watching for notifications, Ctrl-C to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}

func (s *NotificationService) print(n api.Notification) {
	marker := " "
	if !n.Read {
		marker = "*"
	}
	line := fmt.Sprintf("%s %s from %s", marker, n.Type, n.SenderID)
	if n.PostID != "" {
		line += fmt.Sprintf(" on post %s", n.PostID)
	}
	fmt.Printf("%s  (%s)\n", line, n.CreatedAt.Format("2006-01-02 15:04"))
}
