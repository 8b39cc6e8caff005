package service

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/pager"
	"github.com/lumen-social/cli/pkg/session"
	"github.com/lumen-social/cli/pkg/store"
)

// ProfileService shows and edits profiles and follow relationships.
type ProfileService struct {
	sessions *session.Store
	posts    *store.Store
}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	return &ProfileService{sessions: session.Default(), posts: store.Default()}
}

// Show prints a user's profile and their recent posts.
func (s *ProfileService) Show(ctx context.Context, username string) error {
	user, err := api.GetUserByUsername(ctx, username)
	if err != nil {
		formatter.PrintError("Failed to fetch profile: %v", err)
		return err
	}

	formatter.Bold.Printf("@%s\n", user.Username)
	kv := map[string]interface{}{
		"Full Name": user.FullName,
		"Bio":       user.Bio,
		"Website":   user.Website,
		"Followers": len(user.Followers),
		"Following": len(user.Following),
	}
	formatter.PrintKeyValue(kv)

	pageSize := config.GetInt("api.page_size")
	if err := s.posts.FetchUserPosts(ctx, user.ID, 1, pageSize); err != nil {
		formatter.PrintError("Failed to fetch posts: %v", err)
		return err
	}

	posts := s.posts.Own()
	if len(posts) > 0 {
		fmt.Printf("\n")
		formatter.PrintInfo("Recent posts:")
		for i := range posts {
			printPost(&posts[i], "")
		}
	}
	return nil
}

// Update shallow-merges changed profile fields, remotely and in the
// cached session user.
func (s *ProfileService) Update(ctx context.Context, req api.UpdateProfileRequest) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	if req == (api.UpdateProfileRequest{}) {
		return fmt.Errorf("nothing to update")
	}

	if _, err := api.UpdateProfile(ctx, req); err != nil {
		formatter.PrintError("Failed to update profile: %v", err)
		return err
	}
	s.sessions.UpdateProfile(req)

	formatter.PrintSuccess("✓ Profile updated")
	return nil
}

// Follow follows a user and updates the cached following set.
func (s *ProfileService) Follow(ctx context.Context, username string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	target, err := api.GetUserByUsername(ctx, username)
	if err != nil {
		formatter.PrintError("Failed to resolve @%s: %v", username, err)
		return err
	}
	if target.ID == user.ID {
		return fmt.Errorf("you cannot follow yourself")
	}

	if err := api.FollowUser(ctx, target.ID); err != nil {
		formatter.PrintError("Failed to follow @%s: %v", username, err)
		return err
	}
	s.sessions.UpdateFollowing(target.ID, true)

	formatter.PrintSuccess("✓ Now following @%s", username)
	return nil
}

// Unfollow unfollows a user and updates the cached following set.
func (s *ProfileService) Unfollow(ctx context.Context, username string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	target, err := api.GetUserByUsername(ctx, username)
	if err != nil {
		formatter.PrintError("Failed to resolve @%s: %v", username, err)
		return err
	}

	if err := api.UnfollowUser(ctx, target.ID); err != nil {
		formatter.PrintError("Failed to unfollow @%s: %v", username, err)
		return err
	}
	s.sessions.UpdateFollowing(target.ID, false)

	formatter.PrintSuccess("✓ Unfollowed @%s", username)
	return nil
}

// Followers pages through a user's followers.
func (s *ProfileService) Followers(ctx context.Context, username string) error {
	return s.listUsers(ctx, username, "Followers", api.GetFollowers)
}

// Following pages through the users a user follows.
func (s *ProfileService) Following(ctx context.Context, username string) error {
	return s.listUsers(ctx, username, "Following", api.GetFollowing)
}

func (s *ProfileService) listUsers(ctx context.Context, username, label string,
	fetch func(context.Context, string, int, int) (*api.UserPage, error)) error {

	user, err := api.GetUserByUsername(ctx, username)
	if err != nil {
		formatter.PrintError("Failed to resolve @%s: %v", username, err)
		return err
	}

	pageSize := config.GetInt("api.page_size")
	users := pager.New(func(ctx context.Context, page, size int) ([]api.User, bool, error) {
		resp, err := fetch(ctx, user.ID, page, size)
		if err != nil {
			return nil, false, err
		}
		return resp.Users, resp.HasMore(), nil
	}, pageSize)

	if err := users.LoadInitial(ctx); err != nil {
		formatter.PrintError("Failed to fetch %s: %v", label, err)
		return err
	}
	for users.HasMore() {
		if err := users.LoadMore(ctx); err != nil {
			formatter.PrintError("Failed to fetch %s: %v", label, err)
			return err
		}
	}

	items := users.Items()
	formatter.PrintInfo("%s of @%s (%d)", label, username, len(items))
	for _, u := range items {
		fmt.Printf("  @%s", u.Username)
		if u.FullName != "" {
			fmt.Printf(" (%s)", u.FullName)
		}
		fmt.Println()
	}
	return nil
}
