package api

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

// Tag is the canonical hashtag shape. The server's tag search returns a
// mix of bare strings and objects; both are normalized here so callers
// never see the ambiguity.
type Tag struct {
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
}

// normalizeTag converts one raw tag search result (string or object)
// into the canonical Tag shape.
func normalizeTag(raw json.RawMessage) (Tag, bool) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return Tag{Name: name}, name != ""
	}

	var tag Tag
	if err := json.Unmarshal(raw, &tag); err == nil {
		return tag, tag.Name != ""
	}
	return Tag{}, false
}

// SearchTags searches hashtags by prefix.
func SearchTags(ctx context.Context, query string, limit int) ([]Tag, error) {
	logger.Debug("Searching tags", "query", query)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     query,
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/api/tags/search")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Tags []json.RawMessage `json:"tags"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(out.Tags))
	for _, raw := range out.Tags {
		if tag, ok := normalizeTag(raw); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
