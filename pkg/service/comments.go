package service

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/session"
	"github.com/lumen-social/cli/pkg/store"
)

// CommentService drives commenting and comment engagement.
type CommentService struct {
	sessions *session.Store
	posts    *store.Store
}

// NewCommentService creates a new comment service
func NewCommentService() *CommentService {
	return &CommentService{sessions: session.Default(), posts: store.Default()}
}

// Add comments on a post.
func (s *CommentService) Add(ctx context.Context, postID, text string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("comment text cannot be empty")
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.AddComment(ctx, postID, user.ID, text); err != nil {
		formatter.PrintError("Failed to add comment: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Comment added")
	return nil
}

// Reply replies to a comment.
func (s *CommentService) Reply(ctx context.Context, postID, commentID, text string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("reply text cannot be empty")
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.ReplyToComment(ctx, postID, commentID, user.ID, text); err != nil {
		formatter.PrintError("Failed to add reply: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Reply added")
	return nil
}

// Like toggles a like on a comment.
func (s *CommentService) Like(ctx context.Context, postID, commentID string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.ToggleCommentLike(ctx, postID, commentID, user.ID); err != nil {
		formatter.PrintError("Failed to toggle comment like: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Toggled like on comment %s", commentID)
	return nil
}

// LikeReply toggles a like on a reply.
func (s *CommentService) LikeReply(ctx context.Context, postID, commentID, replyID string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.ToggleReplyLike(ctx, postID, commentID, replyID, user.ID); err != nil {
		formatter.PrintError("Failed to toggle reply like: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Toggled like on reply %s", replyID)
	return nil
}
