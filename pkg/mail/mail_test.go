package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/pkg/config"
)

func sampleMessage() Message {
	return Message{
		ToEmail:      "intern@example.com",
		Subject:      "Volunteer Hours Approved",
		Template:     "volunteer_hours_approved",
		TemplateData: map[string]interface{}{"hours": 3.0},
		FallbackHTML: "<p>approved</p>",
	}
}

func TestHTTPSenderPostsPayload(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/send-email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"message":"Email sent successfully","message_id":"m-1"}`))
	}))
	defer srv.Close()

	res, err := NewHTTPSender(srv.URL, time.Second).Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.Equal(t, "m-1", res.MessageID)
	assert.Equal(t, "intern@example.com", received["to_email"])
	assert.Equal(t, "volunteer_hours_approved", received["template"])
	assert.Equal(t, "<p>approved</p>", received["fallback_html"])
}

func TestHTTPSenderSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to send email"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSender(srv.URL, time.Second).Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to send email")
}

func TestMessageValidate(t *testing.T) {
	msg := sampleMessage()
	msg.ToEmail = " "
	require.ErrorIs(t, msg.Validate(), ErrInvalidMessage)

	msg = sampleMessage()
	msg.Template, msg.FallbackHTML = "", ""
	require.ErrorIs(t, msg.Validate(), ErrInvalidMessage)
}

func TestLogSender(t *testing.T) {
	res, err := NewLogSender(zap.NewNop()).Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.Equal(t, "log", res.Provider)
	assert.NotEmpty(t, res.MessageID)
}

func TestNewSenderSelectsProvider(t *testing.T) {
	sender, err := NewSender(config.NotificationConfig{Provider: config.NotificationProviderLog}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, sender)

	sender, err = NewSender(config.NotificationConfig{Provider: config.NotificationProviderHTTP, ServiceURL: "http://mail"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSender{}, sender)

	sender, err = NewSender(config.NotificationConfig{Provider: config.NotificationProviderSendGrid, SendGridAPIKey: "key"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, sender)

	_, err = NewSender(config.NotificationConfig{Provider: config.NotificationProviderSendGrid}, nil)
	require.Error(t, err)

	_, err = NewSender(config.NotificationConfig{Provider: "pigeon"}, nil)
	require.Error(t, err)
}

func TestSendGridPrepare(t *testing.T) {
	s := NewSendGridSender("key", "STEM Spark", "no-reply@example.com")
	m := s.prepare(sampleMessage())
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Volunteer Hours Approved", m.Personalizations[0].Subject)
	assert.Equal(t, "intern@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "no-reply@example.com", m.From.Address)
	assert.Equal(t, []string{"volunteer_hours_approved"}, m.Categories)
}

func TestSendGridSenderPostsMail(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("X-Message-Id", "sg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender("key", "STEM Spark", "no-reply@example.com")
	s.host = srv.URL

	res, err := s.Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "sendgrid", res.Provider)
	assert.Equal(t, "sg-1", res.MessageID)
	assert.Equal(t, "no-reply@example.com", body["from"].(map[string]interface{})["email"])
}

func TestSendGridSenderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewSendGridSender("bad", "STEM Spark", "no-reply@example.com")
	s.host = srv.URL

	_, err := s.Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Send(ctx, sampleMessage())
	require.ErrorIs(t, err, context.Canceled)
}
