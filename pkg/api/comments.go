package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type AddCommentRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// AddComment creates a comment on a post and returns the server's copy,
// including its permanent id.
func AddComment(ctx context.Context, postID string, req AddCommentRequest) (*Comment, error) {
	logger.Debug("Adding comment", "post_id", postID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/posts/%s/comments", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Comment Comment `json:"comment"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// ReplyToComment creates a reply nested under a comment.
func ReplyToComment(ctx context.Context, postID, commentID string, req AddCommentRequest) (*Reply, error) {
	logger.Debug("Adding reply", "post_id", postID, "comment_id", commentID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/posts/%s/comments/%s/replies", postID, commentID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Reply Reply `json:"reply"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Reply, nil
}

// LikeComment toggles userID's like on a comment.
func LikeComment(ctx context.Context, postID, commentID, userID string) error {
	logger.Debug("Toggling comment like", "post_id", postID, "comment_id", commentID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Put(fmt.Sprintf("/api/posts/%s/comments/%s/like", postID, commentID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// LikeReply toggles userID's like on a reply.
func LikeReply(ctx context.Context, postID, commentID, replyID, userID string) error {
	logger.Debug("Toggling reply like", "post_id", postID, "reply_id", replyID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Put(fmt.Sprintf("/api/posts/%s/comments/%s/replies/%s/like", postID, commentID, replyID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}
