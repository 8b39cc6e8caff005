package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

type CreatePostRequest struct {
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Location    *Location    `json:"location,omitempty"`
	TaggedUsers []TaggedUser `json:"tagged_users,omitempty"`
}

// PostPage is one page of posts.
type PostPage struct {
	Posts      []Post `json:"posts"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// HasMore reports whether pages remain after this one.
func (p *PostPage) HasMore() bool {
	return p.Page*p.PageSize < p.TotalCount
}

// GetTimeline fetches the timeline (posts by followed users) for a user.
func GetTimeline(ctx context.Context, userID string, page, pageSize int) (*PostPage, error) {
	logger.Debug("Fetching timeline", "user_id", userID, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get(fmt.Sprintf("/api/users/%s/timeline", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		PostPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.PostPage, nil
}

// GetUserPosts fetches posts authored by a user.
func GetUserPosts(ctx context.Context, userID string, page, pageSize int) (*PostPage, error) {
	logger.Debug("Fetching user posts", "user_id", userID, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get(fmt.Sprintf("/api/users/%s/posts", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		PostPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.PostPage, nil
}

// GetPost fetches a single post with its comments.
func GetPost(ctx context.Context, postID string) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/posts/%s", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Post Post `json:"post"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// CreatePost publishes a new post. The image must already be uploaded;
// ImageURL carries the durable media URL.
func CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	logger.Debug("Creating post")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Post Post `json:"post"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// DeletePost deletes a post. The server authorizes against the
// requesting user (owner or admin).
func DeletePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParam("user_id", userID).
		Delete(fmt.Sprintf("/api/posts/%s", postID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// LikePost toggles userID's like on the post. The server applies toggle
// semantics: liking an already-liked post removes the like.
func LikePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Toggling post like", "post_id", postID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Put(fmt.Sprintf("/api/posts/%s/like", postID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// SavePost toggles userID's save on the post, same contract as LikePost.
func SavePost(ctx context.Context, postID, userID string) error {
	logger.Debug("Toggling post save", "post_id", postID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Put(fmt.Sprintf("/api/posts/%s/save", postID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}

// GetPostLikers lists the users who liked a post, one page at a time.
func GetPostLikers(ctx context.Context, postID string, page, pageSize int) (*UserPage, error) {
	logger.Debug("Fetching post likers", "post_id", postID, "page", page)
	return getUserPage(ctx, fmt.Sprintf("/api/posts/%s/likes", postID), page, pageSize)
}

// GetPostsByTag fetches posts carrying a hashtag.
func GetPostsByTag(ctx context.Context, tag string, page, pageSize int) (*PostPage, error) {
	logger.Debug("Fetching posts by tag", "tag", tag, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get(fmt.Sprintf("/api/tags/%s/posts", tag))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		PostPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.PostPage, nil
}

// GetPostsByLocation fetches posts attached to a named place.
func GetPostsByLocation(ctx context.Context, location string, page, pageSize int) (*PostPage, error) {
	logger.Debug("Fetching posts by location", "location", location, "page", page)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"location":  location,
			"page":      fmt.Sprintf("%d", page),
			"page_size": fmt.Sprintf("%d", pageSize),
		}).
		Get("/api/posts/by-location")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		PostPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.PostPage, nil
}
