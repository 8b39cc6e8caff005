package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

// GetStats fetches aggregate platform statistics for one timeframe
// (week, month, year). Admin only.
func GetStats(ctx context.Context, timeframe string) (*Stats, error) {
	if !ValidTimeframe(timeframe) {
		return nil, &Error{Message: fmt.Sprintf("invalid timeframe %q: must be week, month or year", timeframe)}
	}

	logger.Debug("Fetching statistics", "timeframe", timeframe)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParam("timeframe", timeframe).
		Get("/api/admin/stats")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Stats Stats `json:"stats"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
