package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

// ListStories fetches active (unexpired) stories from followed users.
func ListStories(ctx context.Context) ([]Story, error) {
	logger.Debug("Fetching stories")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/stories")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Stories []Story `json:"stories"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

// CreateStory publishes a story from an already-uploaded image. The
// client key makes retried submissions idempotent server-side.
func CreateStory(ctx context.Context, imageURL string) (*Story, error) {
	logger.Debug("Creating story")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"image_url":  imageURL,
			"client_key": uuid.NewString(),
		}).
		Post("/api/stories")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Story Story `json:"story"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Story, nil
}

// MarkStoryViewed records the current user's view of a story.
func MarkStoryViewed(ctx context.Context, storyID string) error {
	logger.Debug("Marking story viewed", "story_id", storyID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Put(fmt.Sprintf("/api/stories/%s/view", storyID))

	if err := CheckResponse(resp, err); err != nil {
		return err
	}
	return decode(resp, nil)
}
