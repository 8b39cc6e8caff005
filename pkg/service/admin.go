package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/moderation"
	"github.com/lumen-social/cli/pkg/output"
	"github.com/lumen-social/cli/pkg/session"
)

// AdminService drives the moderation queue and platform statistics.
// Every operation requires an admin session; the server enforces the
// same check, this is just a faster local failure.
type AdminService struct {
	sessions *session.Store
	queue    *moderation.Queue
}

// NewAdminService creates a new admin service
func NewAdminService() *AdminService {
	return &AdminService{
		sessions: session.Default(),
		queue:    moderation.DefaultQueue(),
	}
}

func (s *AdminService) ensureAdmin() error {
	user, err := ensureAuth(s.sessions)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		formatter.PrintError("This command requires an admin account")
		return fmt.Errorf("not an admin")
	}
	return nil
}

// ListReports fetches reports into the moderation queue and prints them.
func (s *AdminService) ListReports(ctx context.Context, status string, page int) error {
	if err := s.ensureAdmin(); err != nil {
		return err
	}
	if status != "" && !moderation.ValidStatus(status) {
		formatter.PrintError("Unknown status %q", status)
		return fmt.Errorf("invalid report status: %s", status)
	}

	resp, err := api.ListReports(ctx, status, page, config.GetInt("api.page_size"))
	if err != nil {
		formatter.PrintError("Failed to fetch reports: %v", err)
		return err
	}
	s.queue.SetReports(resp.Reports)

	if len(resp.Reports) == 0 {
		fmt.Println("No reports")
		return nil
	}

	if output.GetFormat() == output.FormatJSON {
		return output.Print("", resp.Reports)
	}

	headers := []string{"ID", "Status", "Reason", "Target", "Filed"}
	rows := make([][]string, 0, len(resp.Reports))
	for _, r := range resp.Reports {
		target := r.TargetType
		if r.TargetID != "" {
			target = fmt.Sprintf("%s %s", r.TargetType, r.TargetID)
		}
		rows = append(rows, []string{
			r.ID, r.Status, r.Reason, target, r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	if err := output.PrintList("Reports", rows, headers); err != nil {
		return err
	}
	formatter.PrintInfo("Page %d, %d reports total", resp.Page, resp.TotalCount)
	return nil
}

// ShowReport opens one report in the queue and prints its detail.
func (s *AdminService) ShowReport(ctx context.Context, reportID string) error {
	if err := s.ensureAdmin(); err != nil {
		return err
	}

	report, err := api.GetReport(ctx, reportID)
	if err != nil {
		formatter.PrintError("Failed to fetch report: %v", err)
		return err
	}
	s.queue.Open(*report)

	if output.GetFormat() == output.FormatJSON {
		return output.Print("", report)
	}

	fmt.Printf("Report %s\n", report.ID)
	fmt.Printf("  Status:   %s\n", report.Status)
	fmt.Printf("  Reason:   %s\n", report.Reason)
	if report.TargetID != "" {
		fmt.Printf("  Target:   %s %s\n", report.TargetType, report.TargetID)
	}
	if report.Details != "" {
		fmt.Printf("  Details:  %s\n", report.Details)
	}
	if report.AdminNote != "" {
		fmt.Printf("  Note:     %s\n", report.AdminNote)
	}
	fmt.Printf("  Filed:    %s\n", report.CreatedAt.Format("2006-01-02 15:04"))
	if report.ResolvedAt != nil {
		fmt.Printf("  Resolved: %s\n", report.ResolvedAt.Format("2006-01-02 15:04"))
	}
	next := moderation.NextStatuses(report.Status)
	if len(next) > 0 {
		formatter.PrintInfo("Next statuses: %s", strings.Join(next, ", "))
	}
	return nil
}

// UpdateReport moves a report to a new status through the queue, which
// rejects illegal transitions before any network traffic.
func (s *AdminService) UpdateReport(ctx context.Context, reportID, status, note string) error {
	if err := s.ensureAdmin(); err != nil {
		return err
	}

	// The queue validates against the last fetched state; fetch the
	// report first so a standalone update still has a baseline.
	if s.queue.Current() == nil || s.queue.Current().ID != reportID {
		report, err := api.GetReport(ctx, reportID)
		if err != nil {
			formatter.PrintError("Failed to fetch report: %v", err)
			return err
		}
		s.queue.Open(*report)
	}

	updated, err := s.queue.Transition(ctx, reportID, status, note)
	if err != nil {
		formatter.PrintError("Failed to update report: %v", err)
		return err
	}

	formatter.PrintSuccess("Report %s is now %s", updated.ID, updated.Status)
	return nil
}

// Stats prints aggregate platform statistics for one timeframe.
func (s *AdminService) Stats(ctx context.Context, timeframe string) error {
	if err := s.ensureAdmin(); err != nil {
		return err
	}
	if timeframe == "" {
		timeframe = api.TimeframeWeek
	}
	if !api.ValidTimeframe(timeframe) {
		formatter.PrintError("Unknown timeframe %q: must be week, month or year", timeframe)
		return fmt.Errorf("invalid timeframe: %s", timeframe)
	}

	stats, err := api.GetStats(ctx, timeframe)
	if err != nil {
		formatter.PrintError("Failed to fetch statistics: %v", err)
		return err
	}

	if output.GetFormat() == output.FormatJSON {
		return output.Print("", stats)
	}

	return output.PrintRecord(fmt.Sprintf("Statistics (last %s)", stats.Timeframe), map[string]interface{}{
		"New users":       stats.NewUsers,
		"New posts":       stats.NewPosts,
		"New comments":    stats.NewComments,
		"Active users":    stats.ActiveUsers,
		"Pending reports": stats.PendingReports,
		"Total users":     stats.TotalUsers,
		"Total posts":     stats.TotalPosts,
	})
}
