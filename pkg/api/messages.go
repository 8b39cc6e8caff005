package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
	ClientKey   string `json:"client_key,omitempty"`
}

// MessagePage is one page of messages in a conversation, newest first.
type MessagePage struct {
	Messages   []Message `json:"messages"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// HasMore reports whether pages remain after this one.
func (p *MessagePage) HasMore() bool {
	return p.Page*p.PageSize < p.TotalCount
}

// ListConversations fetches the current user's chat threads.
func ListConversations(ctx context.Context) ([]Conversation, error) {
	logger.Debug("Fetching conversations")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/messages/conversations")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Conversations []Conversation `json:"conversations"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// GetMessages fetches one page of a conversation's messages.
func GetMessages(ctx context.Context, conversationID string, page, pageSize int) (*MessagePage, error) {
	logger.Debug("Fetching messages", "conversation_id", conversationID, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get(fmt.Sprintf("/api/messages/conversations/%s", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		MessagePage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.MessagePage, nil
}

// SendMessage sends a chat message to a user.
func SendMessage(ctx context.Context, recipientID, text string) (*Message, error) {
	logger.Debug("Sending message", "recipient_id", recipientID)

	req := SendMessageRequest{
		RecipientID: recipientID,
		Text:        text,
		ClientKey:   uuid.NewString(),
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/messages")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Message Message `json:"message"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

// MarkConversationRead marks every message in a conversation as read.
func MarkConversationRead(ctx context.Context, conversationID string) error {
	logger.Debug("Marking conversation read", "conversation_id", conversationID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Put(fmt.Sprintf("/api/messages/conversations/%s/read", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}
