package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/middleware"
	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
)

type volunteerServiceMock struct {
	submitReq     dto.SubmitVolunteerHoursRequest
	submitResp    *models.VolunteerHours
	submitErr     error
	listID        string
	listResp      []models.VolunteerHours
	statsResp     *models.VolunteerHoursStats
	sessionArgs   []interface{}
	sessionResp   *models.VolunteerHours
	sessionErr    error
	exportFormat  dto.ExportFormat
	exportResp    *dto.ExportResult
	submitCalled  bool
	sessionCalled bool
}

func (m *volunteerServiceMock) Submit(_ context.Context, req dto.SubmitVolunteerHoursRequest) (*models.VolunteerHours, error) {
	m.submitCalled = true
	m.submitReq = req
	return m.submitResp, m.submitErr
}

func (m *volunteerServiceMock) ListForIntern(_ context.Context, internID string) ([]models.VolunteerHours, error) {
	m.listID = internID
	return m.listResp, nil
}

func (m *volunteerServiceMock) Stats(context.Context, string) (*models.VolunteerHoursStats, error) {
	return m.statsResp, nil
}

func (m *volunteerServiceMock) CreateFromCompletedSession(_ context.Context, sessionID, internID string, hours float64, note string) (*models.VolunteerHours, error) {
	m.sessionCalled = true
	m.sessionArgs = []interface{}{sessionID, internID, hours, note}
	return m.sessionResp, m.sessionErr
}

func (m *volunteerServiceMock) ExportVolunteerLog(_ context.Context, _ string, format dto.ExportFormat) (*dto.ExportResult, error) {
	m.exportFormat = format
	return m.exportResp, nil
}

func newJSONContext(method, target, body string, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if userID != "" {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}})
	}
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestVolunteerHoursHandlerSubmit(t *testing.T) {
	mockSvc := &volunteerServiceMock{submitResp: &models.VolunteerHours{ID: "vh-1", Status: models.VolunteerHoursPending}}
	handler := NewVolunteerHoursHandler(mockSvc, mockSvc)

	c, w := newJSONContext(http.MethodPost, "/volunteer-hours",
		`{"activity_date":"2024-06-10","activity_type":"Workshop","hours":2.5,"intern_id":"someone-else"}`, "intern-1")
	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "intern-1", mockSvc.submitReq.InternID)
	assert.Equal(t, 2.5, mockSvc.submitReq.Hours)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
}

func TestVolunteerHoursHandlerSubmitErrors(t *testing.T) {
	mockSvc := &volunteerServiceMock{submitErr: appErrors.Clone(appErrors.ErrValidation, "Hours must be between 0 and 24")}
	handler := NewVolunteerHoursHandler(mockSvc, mockSvc)

	c, w := newJSONContext(http.MethodPost, "/volunteer-hours", `{"hours":`, "intern-1")
	handler.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.submitCalled)

	c, w = newJSONContext(http.MethodPost, "/volunteer-hours", `{"hours":30}`, "")
	handler.Submit(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newJSONContext(http.MethodPost, "/volunteer-hours", `{"activity_date":"2024-06-10","hours":30}`, "intern-1")
	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "Hours must be between 0 and 24", errBody["message"])
}

func TestVolunteerHoursHandlerListMineAndStats(t *testing.T) {
	mockSvc := &volunteerServiceMock{
		listResp:  []models.VolunteerHours{{ID: "vh-1"}},
		statsResp: &models.VolunteerHoursStats{TotalHours: 4},
	}
	handler := NewVolunteerHoursHandler(mockSvc, mockSvc)

	c, w := newJSONContext(http.MethodGet, "/volunteer-hours/me", "", "intern-1")
	handler.ListMine(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "intern-1", mockSvc.listID)

	c, w = newJSONContext(http.MethodGet, "/volunteer-hours/me/stats", "", "intern-1")
	handler.MyStats(c)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["total_hours"])
}

func TestVolunteerHoursHandlerExport(t *testing.T) {
	mockSvc := &volunteerServiceMock{exportResp: &dto.ExportResult{Filename: "log.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}}
	handler := NewVolunteerHoursHandler(mockSvc, mockSvc)

	c, w := newJSONContext(http.MethodGet, "/volunteer-hours/me/export?format=pdf", "", "intern-1")
	handler.ExportMine(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatPDF, mockSvc.exportFormat)
	assert.Equal(t, `attachment; filename="log.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestVolunteerHoursHandlerCreateFromSession(t *testing.T) {
	mockSvc := &volunteerServiceMock{sessionErr: appErrors.Clone(appErrors.ErrConflict, "Volunteer hours already exist for this session")}
	handler := NewVolunteerHoursHandler(mockSvc, mockSvc)

	c, w := newJSONContext(http.MethodPost, "/volunteer-hours/sessions/session-1", `{"hours":1.5,"note":"great"}`, "intern-1")
	c.Params = gin.Params{{Key: "sessionId", Value: "session-1"}}
	handler.CreateFromSession(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, []interface{}{"session-1", "intern-1", 1.5, "great"}, mockSvc.sessionArgs)
}
