package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	notifUnread bool
	notifPages  int
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notification commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.List(cmd.Context(), notifUnread, notifPages)
	},
}

var notifReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark notifications as read",
	Long:  "Mark one notification as read, or all of them when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		notifSvc := service.NewNotificationService()
		return notifSvc.MarkRead(cmd.Context(), id)
	},
}

var notifWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications live",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifSvc := service.NewNotificationService()
		return notifSvc.Watch(cmd.Context())
	},
}

func init() {
	notificationsCmd.Flags().BoolVar(&notifUnread, "unread", false, "Show only unread notifications")
	notificationsCmd.Flags().IntVar(&notifPages, "pages", 3, "Maximum pages to fetch, 0 for all")

	notificationsCmd.AddCommand(notifReadCmd)
	notificationsCmd.AddCommand(notifWatchCmd)
}
