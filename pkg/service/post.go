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

// PostService drives post creation and engagement.
type PostService struct {
	sessions *session.Store
	posts    *store.Store
}

// NewPostService creates a new post service
func NewPostService() *PostService {
	return &PostService{sessions: session.Default(), posts: store.Default()}
}

// Create uploads the image, then publishes the post.
func (s *PostService) Create(ctx context.Context, imagePath, description, locationName string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	if imagePath == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if description == "" {
		return fmt.Errorf("description cannot be empty")
	}

	formatter.PrintInfo("Uploading image...")
	upload, err := api.UploadImage(ctx, imagePath)
	if err != nil {
		formatter.PrintError("Upload failed: %v", err)
		return err
	}

	req := api.CreatePostRequest{
		Description: description,
		ImageURL:    upload.URL,
	}
	if locationName != "" {
		req.Location = &api.Location{Name: locationName}
	}

	post, err := s.posts.CreatePost(ctx, req)
	if err != nil {
		formatter.PrintError("Failed to create post: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Post published!")
	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Post ID": post.ID,
		"Image":   post.ImageURL,
	})
	return nil
}

// View loads one post with its comments into the detail view.
func (s *PostService) View(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	post := s.posts.Current()
	var viewerID string
	if user := s.sessions.CurrentUser(); user != nil {
		viewerID = user.ID
	}
	printPost(post, viewerID)

	for i := range post.Comments {
		c := &post.Comments[i]
		fmt.Printf("  💬 %s: %s  (❤️ %d)\n", commentAuthor(c.AuthorUsername, c.AuthorID), c.Text, len(c.Likes))
		for j := range c.Replies {
			r := &c.Replies[j]
			fmt.Printf("      ↳ %s: %s  (❤️ %d)\n", commentAuthor(r.AuthorUsername, r.AuthorID), r.Text, len(r.Likes))
		}
	}
	return nil
}

// Like toggles the current user's like on a post.
func (s *PostService) Like(ctx context.Context, postID string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.ToggleLike(ctx, postID, user.ID); err != nil {
		formatter.PrintError("Failed to toggle like: %v", err)
		return err
	}

	post := s.posts.Current()
	if containsID(post.Likes, user.ID) {
		formatter.PrintSuccess("✓ Liked post %s", postID)
	} else {
		formatter.PrintSuccess("✓ Unliked post %s", postID)
	}
	return nil
}

// Save toggles the current user's save on a post.
func (s *PostService) Save(ctx context.Context, postID string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	if err := s.posts.FetchPost(ctx, postID); err != nil {
		formatter.PrintError("Failed to fetch post: %v", err)
		return err
	}

	if err := s.posts.ToggleSave(ctx, postID, user.ID); err != nil {
		formatter.PrintError("Failed to toggle save: %v", err)
		return err
	}

	post := s.posts.Current()
	if containsID(post.SavedBy, user.ID) {
		formatter.PrintSuccess("✓ Saved post %s", postID)
	} else {
		formatter.PrintSuccess("✓ Removed post %s from saved", postID)
	}
	return nil
}

// Delete removes a post. The server authorizes owner or admin.
func (s *PostService) Delete(ctx context.Context, postID string) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	if err := s.posts.DeletePost(ctx, postID, user.ID); err != nil {
		formatter.PrintError("Failed to delete post: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Post deleted")
	return nil
}

// Likers pages through the users who liked a post.
func (s *PostService) Likers(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	pageSize := config.GetInt("api.page_size")
	likers := pager.New(func(ctx context.Context, page, size int) ([]api.User, bool, error) {
		resp, err := api.GetPostLikers(ctx, postID, page, size)
		if err != nil {
			return nil, false, err
		}
		return resp.Users, resp.HasMore(), nil
	}, pageSize)

	if err := likers.LoadInitial(ctx); err != nil {
		formatter.PrintError("Failed to fetch likes: %v", err)
		return err
	}
	for likers.HasMore() {
		if err := likers.LoadMore(ctx); err != nil {
			formatter.PrintError("Failed to fetch likes: %v", err)
			return err
		}
	}

	users := likers.Items()
	if len(users) == 0 {
		fmt.Println("No likes yet")
		return nil
	}

	formatter.PrintInfo("❤️  %d likes", len(users))
	for _, u := range users {
		fmt.Printf("  @%s", u.Username)
		if u.FullName != "" {
			fmt.Printf(" (%s)", u.FullName)
		}
		fmt.Println()
	}
	return nil
}

func commentAuthor(username, id string) string {
	if username != "" {
		return "@" + username
	}
	return id
}
