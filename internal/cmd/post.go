package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	postImage    string
	postCaption  string
	postLocation string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "Create, view, and interact with posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.Create(cmd.Context(), postImage, postCaption, postLocation)
	},
}

var postViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "View a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.View(cmd.Context(), args[0])
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.Like(cmd.Context(), args[0])
	},
}

var postSaveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Save or unsave a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.Save(cmd.Context(), args[0])
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.Delete(cmd.Context(), args[0])
	},
}

var postLikersCmd = &cobra.Command{
	Use:   "likers <post-id>",
	Short: "List who liked a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postSvc := service.NewPostService()
		return postSvc.Likers(cmd.Context(), args[0])
	},
}

func init() {
	postCreateCmd.Flags().StringVar(&postImage, "image", "", "Path to the image file (required)")
	postCreateCmd.Flags().StringVar(&postCaption, "caption", "", "Post caption, @mentions and #hashtags supported")
	postCreateCmd.Flags().StringVar(&postLocation, "location", "", "Location name")
	postCreateCmd.MarkFlagRequired("image")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postSaveCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postLikersCmd)
}
