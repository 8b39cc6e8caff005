package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var storyImage string

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Story commands",
	Long:  "View and post short-lived stories",
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		storySvc := service.NewStoryService()
		return storySvc.List(cmd.Context())
	},
}

var storyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new story",
	RunE: func(cmd *cobra.Command, args []string) error {
		storySvc := service.NewStoryService()
		return storySvc.Create(cmd.Context(), storyImage)
	},
}

var storyViewCmd = &cobra.Command{
	Use:   "view <story-id>",
	Short: "Mark a story as viewed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storySvc := service.NewStoryService()
		return storySvc.View(cmd.Context(), args[0])
	},
}

func init() {
	storyCreateCmd.Flags().StringVar(&storyImage, "image", "", "Path to the image file (required)")
	storyCreateCmd.MarkFlagRequired("image")

	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyViewCmd)
}
