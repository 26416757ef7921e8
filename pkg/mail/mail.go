package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/pkg/config"
)

// ErrInvalidMessage is returned for messages that cannot be delivered as built.
var ErrInvalidMessage = errors.New("invalid mail message")

// Message is a templated email. FallbackHTML is used by providers that cannot render Template.
type Message struct {
	ToEmail      string                 `json:"to_email"`
	ToName       string                 `json:"-"`
	Subject      string                 `json:"subject"`
	Template     string                 `json:"template"`
	TemplateData map[string]interface{} `json:"template_data"`
	FallbackHTML string                 `json:"fallback_html,omitempty"`
}

// Validate checks the fields every provider needs.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.ToEmail) == "":
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case m.Template == "" && m.FallbackHTML == "":
		return fmt.Errorf("%w: template or fallback html is required", ErrInvalidMessage)
	}
	return nil
}

// Result reports a provider acceptance.
type Result struct {
	Success   bool
	Provider  string
	MessageID string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

// NewSender selects the provider named in cfg.
func NewSender(cfg config.NotificationConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.NotificationProviderHTTP:
		if cfg.ServiceURL == "" {
			return nil, errors.New("mail service url is required for the http provider")
		}
		return NewHTTPSender(cfg.ServiceURL, cfg.Timeout), nil
	case config.NotificationProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, errors.New("sendgrid api key is required for the sendgrid provider")
		}
		return NewSendGridSender(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail), nil
	case "", config.NotificationProviderLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown notification provider %q", cfg.Provider)
	}
}
