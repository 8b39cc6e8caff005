package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var searchInteractive bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search commands",
	Long:  "Search for users and hashtags",
}

var searchUsersCmd = &cobra.Command{
	Use:   "users [query]",
	Short: "Search for users",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchSvc := service.NewSearchService()
		if searchInteractive || len(args) == 0 {
			return searchSvc.Interactive(cmd.Context())
		}
		return searchSvc.Users(cmd.Context(), args[0])
	},
}

var searchTagsCmd = &cobra.Command{
	Use:   "tags <query>",
	Short: "Search for hashtags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchSvc := service.NewSearchService()
		return searchSvc.Tags(cmd.Context(), args[0])
	},
}

func init() {
	searchUsersCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "Search as you type")

	searchCmd.AddCommand(searchUsersCmd)
	searchCmd.AddCommand(searchTagsCmd)
}
