package service

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/pager"
)

// SearchService runs user and tag searches, one-shot or interactive.
type SearchService struct{}

// NewSearchService creates a new search service
func NewSearchService() *SearchService {
	return &SearchService{}
}

// Users runs a one-shot user search.
func (s *SearchService) Users(ctx context.Context, query string) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	resp, err := api.SearchUsers(ctx, query, 1, config.GetInt("api.page_size"))
	if err != nil {
		formatter.PrintError("Search failed: %v", err)
		return err
	}

	if len(resp.Users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	formatter.PrintInfo("Found %d users", resp.TotalCount)
	for _, u := range resp.Users {
		fmt.Printf("  @%s", u.Username)
		if u.FullName != "" {
			fmt.Printf(" (%s)", u.FullName)
		}
		fmt.Println()
	}
	return nil
}

// Tags runs a one-shot tag search.
func (s *SearchService) Tags(ctx context.Context, query string) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	tags, err := api.SearchTags(ctx, query, config.GetInt("api.page_size"))
	if err != nil {
		formatter.PrintError("Search failed: %v", err)
		return err
	}

	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	for _, tag := range tags {
		fmt.Printf("  #%s", tag.Name)
		if tag.PostCount > 0 {
			fmt.Printf("  (%d posts)", tag.PostCount)
		}
		fmt.Println()
	}
	return nil
}

// Interactive reads queries line by line, searching as the user types.
// Each line is debounced so only the last entry in a quick burst hits
// the network, mirroring search-as-you-type behavior.
func (s *SearchService) Interactive(ctx context.Context) error {
	delay := time.Duration(config.GetInt("search.debounce_ms")) * time.Millisecond

	searcher := pager.NewSearcher(func(ctx context.Context, query string) ([]api.User, error) {
		resp, err := api.SearchUsers(ctx, query, 1, config.GetInt("api.page_size"))
		if err != nil {
			return nil, err
		}
		return resp.Users, nil
	}, delay, func(users []api.User) {
		if len(users) == 0 {
			fmt.Println("  (no matches)")
			return
		}
		for _, u := range users {
			fmt.Printf("  @%s\n", u.Username)
		}
	})
	defer searcher.Close()

	formatter.PrintInfo("Type to search users, empty line to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("search> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			return nil
		}
		searcher.SetQuery(ctx, query)
		// Give the debounce window time to fire before prompting again.
		time.Sleep(delay + 200*time.Millisecond)
	}
}
