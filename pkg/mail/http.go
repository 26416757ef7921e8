package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendEmailPath = "/api/send-email"

// HTTPSender posts messages to the platform mail service, which owns template rendering.
type HTTPSender struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSender builds a sender targeting baseURL.
func NewHTTPSender(baseURL string, timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

type httpSendResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, msg Message) (Result, error) {
	if err := msg.Validate(); err != nil {
		return Result{}, err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return Result{}, fmt.Errorf("encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+sendEmailPath, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call mail service: %w", err)
	}
	defer resp.Body.Close()

	var decoded httpSendResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode >= http.StatusBadRequest {
		reason := decoded.Error
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return Result{}, fmt.Errorf("mail service returned %d: %s", resp.StatusCode, reason)
	}
	return Result{Success: true, Provider: "http", MessageID: decoded.MessageID}, nil
}
