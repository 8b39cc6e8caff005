package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/session"
)

// StoryService lists and posts short-lived stories.
type StoryService struct {
	sessions *session.Store
}

// NewStoryService creates a new story service
func NewStoryService() *StoryService {
	return &StoryService{sessions: session.Default()}
}

// List prints the stories visible to the current user, grouped by
// author, with expired ones filtered client-side.
func (s *StoryService) List(ctx context.Context) error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}

	stories, err := api.ListStories(ctx)
	if err != nil {
		formatter.PrintError("Failed to fetch stories: %v", err)
		return err
	}

	now := time.Now()
	shown := 0
	for _, story := range stories {
		if !story.ExpiresAt.IsZero() && story.ExpiresAt.Before(now) {
			continue
		}
		author := story.AuthorUsername
		if author == "" {
			author = story.AuthorID
		}
		viewed := " "
		for _, id := range story.ViewedBy {
			if id == user.ID {
				viewed = "seen"
				break
			}
		}
		fmt.Printf("  %s  @%s  %s  %s\n", story.ID, author, story.CreatedAt.Format("15:04"), viewed)
		shown++
	}
	if shown == 0 {
		fmt.Println("No active stories")
	}
	return nil
}

// Create uploads an image and posts it as a story.
func (s *StoryService) Create(ctx context.Context, imagePath string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	upload, err := api.UploadImage(ctx, imagePath)
	if err != nil {
		formatter.PrintError("Upload failed: %v", err)
		return err
	}

	story, err := api.CreateStory(ctx, upload.URL)
	if err != nil {
		formatter.PrintError("Failed to post story: %v", err)
		return err
	}

	formatter.PrintSuccess("Story %s posted, expires %s", story.ID, story.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

// View marks a story as viewed.
func (s *StoryService) View(ctx context.Context, storyID string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	if err := api.MarkStoryViewed(ctx, storyID); err != nil {
		formatter.PrintError("Failed to mark story viewed: %v", err)
		return err
	}
	formatter.PrintSuccess("Story viewed")
	return nil
}
