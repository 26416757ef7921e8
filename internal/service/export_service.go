package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/export"
	"github.com/noah-isme/stemspark-api/pkg/logger"
)

type volunteerLogReader interface {
	ListForIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

var volunteerLogColumns = []export.Column{
	{Key: "activity_date", Header: "Date", Width: 1},
	{Key: "activity_type", Header: "Activity", Width: 1.5},
	{Key: "activity_description", Header: "Description", Width: 3},
	{Key: "hours", Header: "Hours", Width: 0.7},
	{Key: "status", Header: "Status", Width: 0.9},
	{Key: "rejection_reason", Header: "Rejection Reason", Width: 2},
}

// ExportService renders an intern's volunteer log for download.
type ExportService struct {
	hours  volunteerLogReader
	csv    datasetRenderer
	pdf    datasetRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the default exporters.
func NewExportService(hours volunteerLogReader, csv, pdf datasetRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		hours:  hours,
		csv:    csv,
		pdf:    pdf,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ExportVolunteerLog renders every entry of internID in the requested format.
func (s *ExportService) ExportVolunteerLog(ctx context.Context, internID string, format dto.ExportFormat) (*dto.ExportResult, error) {
	format = dto.ExportFormat(strings.ToLower(strings.TrimSpace(string(format))))
	if format == "" {
		format = dto.ExportFormatCSV
	}
	var (
		renderer    datasetRenderer
		contentType string
	)
	switch format {
	case dto.ExportFormatCSV:
		renderer, contentType = s.csv, "text/csv"
	case dto.ExportFormatPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	entries, err := s.hours.ListForIntern(ctx, internID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	body, err := renderer.Render(buildVolunteerDataset(entries, now))
	if err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to render volunteer log", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Dependency(err)
	}
	return &dto.ExportResult{
		Filename:    fmt.Sprintf("volunteer-hours-%s.%s", now.Format("20060102"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func buildVolunteerDataset(entries []models.VolunteerHours, now time.Time) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		row := map[string]string{
			"activity_date":        entry.ActivityDate.Format(activityDateLayout),
			"activity_type":        entry.ActivityType,
			"activity_description": entry.ActivityDescription,
			"hours":                formatHours(entry.Hours),
			"status":               string(entry.Status),
		}
		if entry.RejectionReason != nil {
			row["rejection_reason"] = *entry.RejectionReason
		}
		rows = append(rows, row)
	}

	stats := ComputeStats(entries, now)
	return export.Dataset{
		Title:   "Volunteer Hours Log",
		Columns: volunteerLogColumns,
		Rows:    rows,
		Summary: [][2]string{
			{"Generated", now.Format(time.RFC3339)},
			{"Approved hours", formatHours(stats.ApprovedHours)},
			{"Pending hours", formatHours(stats.PendingHours)},
			{"Entries", strconv.Itoa(len(entries))},
		},
	}
}
