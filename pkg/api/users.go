package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type UpdateProfileRequest struct {
	FullName  string `json:"full_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Website   string `json:"website,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserPage is one page of users from a follower/following/likers listing.
type UserPage struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// HasMore reports whether pages remain after this one.
func (p *UserPage) HasMore() bool {
	return p.Page*p.PageSize < p.TotalCount
}

// GetUser fetches a user by id.
func GetUser(ctx context.Context, userID string) (*User, error) {
	logger.Debug("Fetching user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/users/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		User User `json:"user"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetUserByUsername resolves a username to a user.
func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	logger.Debug("Resolving username", "username", username)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParam("username", username).
		Get("/api/users/lookup")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		User User `json:"user"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SearchUsers searches users by username prefix or full name.
func SearchUsers(ctx context.Context, query string, page, pageSize int) (*UserPage, error) {
	logger.Debug("Searching users", "query", query, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":         query,
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get("/api/users/search")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		UserPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.UserPage, nil
}

// UpdateProfile updates the current user's profile fields.
func UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	logger.Debug("Updating profile")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/users/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		User User `json:"user"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// FollowUser follows the target user on behalf of the current user.
func FollowUser(ctx context.Context, targetID string) error {
	logger.Debug("Following user", "target_id", targetID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/users/%s/follow", targetID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// UnfollowUser removes the follow edge to the target user.
func UnfollowUser(ctx context.Context, targetID string) error {
	logger.Debug("Unfollowing user", "target_id", targetID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/users/%s/follow", targetID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

func getUserPage(ctx context.Context, path string, page, pageSize int) (*UserPage, error) {
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get(path)

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		UserPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.UserPage, nil
}

// GetFollowers lists a user's followers, one page at a time.
func GetFollowers(ctx context.Context, userID string, page, pageSize int) (*UserPage, error) {
	logger.Debug("Fetching followers", "user_id", userID, "page", page)
	return getUserPage(ctx, fmt.Sprintf("/api/users/%s/followers", userID), page, pageSize)
}

// GetFollowing lists the users a user follows, one page at a time.
func GetFollowing(ctx context.Context, userID string, page, pageSize int) (*UserPage, error) {
	logger.Debug("Fetching following", "user_id", userID, "page", page)
	return getUserPage(ctx, fmt.Sprintf("/api/users/%s/following", userID), page, pageSize)
}
