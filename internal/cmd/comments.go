package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
	Long:  "Comment on posts and reply to comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.Add(cmd.Context(), args[0], args[1])
	},
}

var commentReplyCmd = &cobra.Command{
	Use:   "reply <post-id> <comment-id> <text>",
	Short: "Reply to a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.Reply(cmd.Context(), args[0], args[1], args[2])
	},
}

var commentLikeCmd = &cobra.Command{
	Use:   "like <post-id> <comment-id>",
	Short: "Like or unlike a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.Like(cmd.Context(), args[0], args[1])
	},
}

var commentLikeReplyCmd = &cobra.Command{
	Use:   "like-reply <post-id> <comment-id> <reply-id>",
	Short: "Like or unlike a reply",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentSvc := service.NewCommentService()
		return commentSvc.LikeReply(cmd.Context(), args[0], args[1], args[2])
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentReplyCmd)
	commentCmd.AddCommand(commentLikeCmd)
	commentCmd.AddCommand(commentLikeReplyCmd)
}
