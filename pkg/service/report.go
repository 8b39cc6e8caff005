package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/session"
)

// ReportService files content reports against posts.
type ReportService struct {
	sessions *session.Store
}

// NewReportService creates a new report service
func NewReportService() *ReportService {
	return &ReportService{sessions: session.Default()}
}

// Create files a report against a post.
func (s *ReportService) Create(ctx context.Context, postID, reason, details string) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	if !api.ValidReason(reason) {
		formatter.PrintError("Unknown reason %q. Valid reasons: %s", reason, strings.Join(api.ReportReasons(), ", "))
		return fmt.Errorf("invalid report reason: %s", reason)
	}

	targetType := "post"
	if postID == "" {
		targetType = "general"
	}

	report, err := api.CreateReport(ctx, api.CreateReportRequest{
		TargetType: targetType,
		TargetID:   postID,
		Reason:     reason,
		Details:    details,
	})
	if err != nil {
		formatter.PrintError("Failed to file report: %v", err)
		return err
	}

	formatter.PrintSuccess("Report %s filed", report.ID)
	return nil
}
