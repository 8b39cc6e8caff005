package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	adminReportStatus string
	adminReportPage   int
	adminReportNote   string
	adminTimeframe    string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin commands",
	Long:  "Moderation queue and platform statistics, admin accounts only",
}

var adminReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List moderation reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminSvc := service.NewAdminService()
		return adminSvc.ListReports(cmd.Context(), adminReportStatus, adminReportPage)
	},
}

var adminReportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show one report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adminSvc := service.NewAdminService()
		return adminSvc.ShowReport(cmd.Context(), args[0])
	},
}

var adminReportUpdateCmd = &cobra.Command{
	Use:   "update <report-id> <status>",
	Short: "Move a report to a new status",
	Long: `Move a report to a new status. Pending reports can become reviewed,
resolved, or dismissed; reviewed reports can become resolved or
dismissed; closed reports can only be reopened to pending.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adminSvc := service.NewAdminService()
		return adminSvc.UpdateReport(cmd.Context(), args[0], args[1], adminReportNote)
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminSvc := service.NewAdminService()
		return adminSvc.Stats(cmd.Context(), adminTimeframe)
	},
}

func init() {
	adminReportsCmd.Flags().StringVar(&adminReportStatus, "status", "", "Filter by status: pending, reviewed, resolved, dismissed")
	adminReportsCmd.Flags().IntVar(&adminReportPage, "page", 1, "Page number")
	adminReportUpdateCmd.Flags().StringVar(&adminReportNote, "note", "", "Admin note to attach")
	adminStatsCmd.Flags().StringVar(&adminTimeframe, "timeframe", "week", "Timeframe: week, month, year")

	adminReportsCmd.AddCommand(adminReportShowCmd)
	adminReportsCmd.AddCommand(adminReportUpdateCmd)

	adminCmd.AddCommand(adminReportsCmd)
	adminCmd.AddCommand(adminStatsCmd)
}
