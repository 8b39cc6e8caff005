package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type CreateNotificationRequest struct {
	RecipientID string `json:"recipient_id"`
	SenderID    string `json:"sender_id"`
	Type        string `json:"type"`
	PostID      string `json:"post_id,omitempty"`
}

// NotificationPage is one page of notifications.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
	TotalCount    int            `json:"total_count"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// HasMore reports whether pages remain after this one.
func (p *NotificationPage) HasMore() bool {
	return p.Page*p.PageSize < p.TotalCount
}

// CreateNotification records a notification for another user. Callers
// on optimistic paths treat failures as best-effort.
func CreateNotification(ctx context.Context, req CreateNotificationRequest) error {
	logger.Debug("Creating notification", "recipient_id", req.RecipientID, "type", req.Type)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/notifications")

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// ListNotifications fetches the current user's notifications.
func ListNotifications(ctx context.Context, page, pageSize int) (*NotificationPage, error) {
	logger.Debug("Fetching notifications", "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get("/api/notifications")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		NotificationPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.NotificationPage, nil
}

// MarkNotificationRead marks a single notification as read.
func MarkNotificationRead(ctx context.Context, notificationID string) error {
	logger.Debug("Marking notification read", "notification_id", notificationID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Put(fmt.Sprintf("/api/notifications/%s/read", notificationID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func MarkAllNotificationsRead(ctx context.Context) error {
	logger.Debug("Marking all notifications read")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Put("/api/notifications/read-all")

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}
