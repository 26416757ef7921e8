package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/export"
)

type stubLogReader struct {
	entries []models.VolunteerHours
	err     error
}

func (s stubLogReader) ListForIntern(context.Context, string) ([]models.VolunteerHours, error) {
	return s.entries, s.err
}

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) { return nil, errors.New("boom") }

func exportEntries() []models.VolunteerHours {
	reason := "=cmd|' /C calc'!A0"
	return []models.VolunteerHours{
		{ActivityDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), ActivityType: "Workshop", ActivityDescription: "Robotics", Hours: 2, Status: models.VolunteerHoursApproved},
		{ActivityDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), ActivityType: "Outreach", ActivityDescription: "Fair", Hours: 1.5, Status: models.VolunteerHoursRejected, RejectionReason: &reason},
	}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(stubLogReader{entries: exportEntries()}, nil, nil, nil)
	svc.now = func() time.Time { return fixedNow }

	res, err := svc.ExportVolunteerLog(context.Background(), "intern-1", "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Equal(t, "volunteer-hours-20240615.csv", res.Filename)

	lines := strings.Split(strings.TrimSpace(string(res.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Activity,Description,Hours,Status,Rejection Reason", lines[0])
	assert.Equal(t, "2024-06-01,Workshop,Robotics,2,approved,", lines[1])
	assert.Contains(t, lines[2], "'=cmd")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(stubLogReader{entries: exportEntries()}, nil, nil, nil)

	res, err := svc.ExportVolunteerLog(context.Background(), "intern-1", dto.ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.True(t, bytes.HasPrefix(res.Body, []byte("%PDF")))
}

func TestExportServiceErrors(t *testing.T) {
	_, err := NewExportService(stubLogReader{}, nil, nil, nil).ExportVolunteerLog(context.Background(), "intern-1", "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = NewExportService(stubLogReader{}, failingRenderer{}, nil, nil).ExportVolunteerLog(context.Background(), "intern-1", "")
	assert.True(t, errors.Is(err, appErrors.ErrInternal))

	listErr := appErrors.Dependency(errors.New("db down"))
	_, err = NewExportService(stubLogReader{err: listErr}, nil, nil, nil).ExportVolunteerLog(context.Background(), "intern-1", "csv")
	assert.ErrorIs(t, err, listErr)
}
