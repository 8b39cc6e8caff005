package cmd

import (
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var messagePage int

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Direct message commands",
	Long:  "Chat with other users",
}

var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		messageSvc := service.NewMessageService()
		return messageSvc.Conversations(cmd.Context())
	},
}

var messageShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageSvc := service.NewMessageService()
		return messageSvc.Show(cmd.Context(), args[0], messagePage)
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <username> <text>",
	Short: "Send a direct message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageSvc := service.NewMessageService()
		return messageSvc.Send(cmd.Context(), args[0], args[1])
	},
}

func init() {
	messageShowCmd.Flags().IntVar(&messagePage, "page", 1, "Page number")

	messageCmd.AddCommand(messageListCmd)
	messageCmd.AddCommand(messageShowCmd)
	messageCmd.AddCommand(messageSendCmd)
}
