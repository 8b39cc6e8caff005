package api

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/client"
	"github.com/lumen-social/cli/pkg/logger"
)

// Report reasons accepted by the server.
const (
	ReasonInappropriate = "inappropriate"
	ReasonSpam          = "spam"
	ReasonHarassment    = "harassment"
	ReasonViolence      = "violence"
	ReasonFake          = "fake"
	ReasonIntellectual  = "intellectual"
	ReasonOther         = "other"
)

// ReportReasons returns the accepted report reasons in display order.
func ReportReasons() []string {
	return []string{
		ReasonInappropriate, ReasonSpam, ReasonHarassment, ReasonViolence,
		ReasonFake, ReasonIntellectual, ReasonOther,
	}
}

// ValidReason reports whether reason is an accepted report reason.
func ValidReason(reason string) bool {
	switch reason {
	case ReasonInappropriate, ReasonSpam, ReasonHarassment, ReasonViolence,
		ReasonFake, ReasonIntellectual, ReasonOther:
		return true
	}
	return false
}

type CreateReportRequest struct {
	TargetType string `json:"target_type"` // post, general
	TargetID   string `json:"target_id,omitempty"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
}

// ReportPage is one page of reports from the admin listing.
type ReportPage struct {
	Reports    []Report `json:"reports"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// CreateReport files a report against a post or the platform.
func CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	logger.Debug("Filing report", "target_type", req.TargetType, "reason", req.Reason)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/reports")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Report Report `json:"report"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// ListReports lists reports, optionally filtered by status. Admin only.
func ListReports(ctx context.Context, status string, page, pageSize int) (*ReportPage, error) {
	logger.Debug("Fetching reports", "status", status, "page", page)

	params := map[string]string{
		"page":      fmt.Sprintf("%d", page),
		"page_size": fmt.Sprintf("%d", pageSize),
	}
	if status != "" {
		params["status"] = status
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/admin/reports")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		ReportPage
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.ReportPage, nil
}

// GetReport fetches a single report. Admin only.
func GetReport(ctx context.Context, reportID string) (*Report, error) {
	logger.Debug("Fetching report", "report_id", reportID)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/admin/reports/%s", reportID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Report Report `json:"report"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// UpdateReportStatus moves a report to a new status with an optional
// admin note. The server enforces admin authorization; transition
// legality is validated client-side by the moderation package before
// this call is made.
func UpdateReportStatus(ctx context.Context, reportID, status, note string) (*Report, error) {
	logger.Debug("Updating report status", "report_id", reportID, "status", status)

	body := map[string]string{"status": status}
	if note != "" {
		body["admin_note"] = note
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(fmt.Sprintf("/api/admin/reports/%s/status", reportID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out struct {
		envelope
		Report Report `json:"report"`
	}
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}
