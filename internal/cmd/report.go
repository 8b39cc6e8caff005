package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	reportReason  string
	reportDetails string
)

var reportCmd = &cobra.Command{
	Use:   "report [post-id]",
	Short: "Report a post or the platform",
	Long: `File a moderation report. With a post id the report targets that
post; without one it is a general platform report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID := ""
		if len(args) == 1 {
			postID = args[0]
		}
		reportSvc := service.NewReportService()
		return reportSvc.Create(cmd.Context(), postID, reportReason, reportDetails)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportReason, "reason", "", "Report reason (required)")
	reportCmd.Flags().StringVar(&reportDetails, "details", "", "Additional details")
	reportCmd.MarkFlagRequired("reason")
}
