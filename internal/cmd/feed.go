package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var feedPage int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the timeline",
	Long:  "Browse posts from people you follow",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ShowTimeline(cmd.Context(), feedPage)
	},
}

var feedTagCmd = &cobra.Command{
	Use:   "tag <hashtag>",
	Short: "Browse posts by hashtag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ShowTag(cmd.Context(), args[0], feedPage)
	},
}

var feedLocationCmd = &cobra.Command{
	Use:   "location <name>",
	Short: "Browse posts by location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedSvc := service.NewFeedService()
		return feedSvc.ShowLocation(cmd.Context(), args[0], feedPage)
	},
}

func init() {
	feedCmd.PersistentFlags().IntVar(&feedPage, "page", 1, "Page number")

	feedCmd.AddCommand(feedTagCmd)
	feedCmd.AddCommand(feedLocationCmd)
}
