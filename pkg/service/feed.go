package service

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/session"
	"github.com/lumen-social/cli/pkg/store"
	"github.com/lumen-social/cli/pkg/textscan"
)

// FeedService renders the timeline and the explore views.
type FeedService struct {
	sessions *session.Store
	posts    *store.Store
}

// NewFeedService creates a new feed service
func NewFeedService() *FeedService {
	return &FeedService{sessions: session.Default(), posts: store.Default()}
}

// ShowTimeline fetches and prints the user's timeline.
func (s *FeedService) ShowTimeline(ctx context.Context, page int) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	pageSize := config.GetInt("api.page_size")
	if err := s.posts.FetchTimeline(ctx, user.ID, page, pageSize); err != nil {
		formatter.PrintError("Failed to fetch timeline: %v", err)
		return err
	}

	posts := s.posts.Timeline()
	if len(posts) == 0 {
		fmt.Println("Your timeline is empty. Follow people to see their posts.")
		return nil
	}

	for i := range posts {
		printPost(&posts[i], user.ID)
	}
	return nil
}

// ShowTag prints posts carrying a hashtag.
func (s *FeedService) ShowTag(ctx context.Context, tag string, page int) error {
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}

	pageSize := config.GetInt("api.page_size")
	if err := s.posts.FetchByTag(ctx, tag, page, pageSize); err != nil {
		formatter.PrintError("Failed to fetch posts for #%s: %v", tag, err)
		return err
	}

	posts := s.posts.Explore()
	if len(posts) == 0 {
		fmt.Printf("No posts found for #%s\n", tag)
		return nil
	}

	formatter.PrintInfo("#%s (%d posts)", tag, len(posts))
	fmt.Printf("\n")
	for i := range posts {
		printPost(&posts[i], "")
	}
	return nil
}

// ShowLocation prints posts attached to a place.
func (s *FeedService) ShowLocation(ctx context.Context, location string, page int) error {
	if location == "" {
		return fmt.Errorf("location cannot be empty")
	}

	pageSize := config.GetInt("api.page_size")
	if err := s.posts.FetchByLocation(ctx, location, page, pageSize); err != nil {
		formatter.PrintError("Failed to fetch posts for %s: %v", location, err)
		return err
	}

	posts := s.posts.Explore()
	if len(posts) == 0 {
		fmt.Printf("No posts found for %s\n", location)
		return nil
	}

	formatter.PrintInfo("📍 %s (%d posts)", location, len(posts))
	fmt.Printf("\n")
	for i := range posts {
		printPost(&posts[i], "")
	}
	return nil
}

// printPost renders one post, with mention and hashtag spans
// highlighted.
func printPost(post *api.Post, viewerID string) {
	author := post.AuthorUsername
	if author == "" {
		author = post.AuthorID
	}

	formatter.Bold.Printf("@%s", author)
	fmt.Printf("  [%s]\n", post.ID)

	if post.Description != "" {
		for _, seg := range textscan.Parse(post.Description) {
			switch seg.Kind {
			case textscan.KindMention:
				formatter.Info.Print(seg.Value)
			case textscan.KindHashtag:
				formatter.Warning.Print(seg.Value)
			default:
				fmt.Print(seg.Value)
			}
		}
		fmt.Println()
	}

	if post.Location != nil && post.Location.Name != "" {
		fmt.Printf("📍 %s\n", post.Location.Name)
	}

	liked := ""
	if viewerID != "" && containsID(post.Likes, viewerID) {
		liked = " (you)"
	}
	fmt.Printf("❤️  %d%s | 💬 %d | 🔖 %d\n", len(post.Likes), liked, len(post.Comments), len(post.SavedBy))
	fmt.Printf("%s\n\n", post.CreatedAt.Format("2006-01-02 15:04"))
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
