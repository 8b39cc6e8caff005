package service

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/session"
)

// MessageService drives direct-message conversations.
type MessageService struct {
	sessions *session.Store
}

// NewMessageService creates a new message service
func NewMessageService() *MessageService {
	return &MessageService{sessions: session.Default()}
}

// Conversations lists the current user's chat threads.
func (s *MessageService) Conversations(ctx context.Context) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	convos, err := api.ListConversations(ctx)
	if err != nil {
		formatter.PrintError("Failed to fetch conversations: %v", err)
		return err
	}

	if len(convos) == 0 {
		fmt.Println("No conversations")
		return nil
	}

	for _, c := range convos {
		other := otherParticipant(c.Participants, user.ID)
		unread := ""
		if c.UnreadCount > 0 {
			unread = fmt.Sprintf("  (%d unread)", c.UnreadCount)
		}
		fmt.Printf("  %s  %s  %s%s\n", c.ID, other, c.LastMessage, unread)
	}
	return nil
}

// Show prints one conversation's messages, oldest first, then marks
// the thread read.
func (s *MessageService) Show(ctx context.Context, conversationID string, page int) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	resp, err := api.GetMessages(ctx, conversationID, page, config.GetInt("api.page_size"))
	if err != nil {
		formatter.PrintError("Failed to fetch messages: %v", err)
		return err
	}

	// Pages arrive newest first; reverse for reading order.
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		m := resp.Messages[i]
		who := "them"
		if m.SenderID == user.ID {
			who = "you"
		}
		fmt.Printf("  [%s] %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Text)
	}
	if resp.HasMore() {
		formatter.PrintInfo("Older messages on page %d", resp.Page+1)
	}

	if err := api.MarkConversationRead(ctx, conversationID); err != nil {
		// Read receipts are best effort.
		formatter.PrintWarning("Could not mark conversation read: %v", err)
	}
	return nil
}

// Send delivers a message to another user, resolving usernames to ids.
func (s *MessageService) Send(ctx context.Context, recipient, text string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("message text cannot be empty")
	}

	recipientID := recipient
	if user, err := api.GetUserByUsername(ctx, recipient); err == nil {
		recipientID = user.ID
	}

	msg, err := api.SendMessage(ctx, recipientID, text)
	if err != nil {
		formatter.PrintError("Failed to send message: %v", err)
		return err
	}

	formatter.PrintSuccess("Sent to conversation %s", msg.ConversationID)
	return nil
}

func otherParticipant(participants []string, selfID string) string {
	for _, p := range participants {
		if p != selfID {
			return p
		}
	}
	return selfID
}
