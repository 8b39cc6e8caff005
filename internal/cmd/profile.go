package cmd

import (
	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	profileFullName string
	profileBio      string
	profileWebsite  string
	profileAvatar   string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long:  "View and manage user profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show a user's profile and posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Show(cmd.Context(), args[0])
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Update(cmd.Context(), api.UpdateProfileRequest{
			FullName:  profileFullName,
			Bio:       profileBio,
			Website:   profileWebsite,
			AvatarURL: profileAvatar,
		})
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Follow(cmd.Context(), args[0])
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <username>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Unfollow(cmd.Context(), args[0])
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers <username>",
	Short: "List a user's followers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Followers(cmd.Context(), args[0])
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <username>",
	Short: "List who a user follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.Following(cmd.Context(), args[0])
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFullName, "name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Profile bio")
	profileUpdateCmd.Flags().StringVar(&profileWebsite, "website", "", "Website URL")
	profileUpdateCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar image URL")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(followCmd)
	profileCmd.AddCommand(unfollowCmd)
	profileCmd.AddCommand(followersCmd)
	profileCmd.AddCommand(followingCmd)
}
