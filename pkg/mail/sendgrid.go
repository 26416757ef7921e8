package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridSender delivers the fallback HTML directly through SendGrid.
type SendGridSender struct {
	apiKey string
	host   string
	from   *sgmail.Email
}

// NewSendGridSender builds a SendGrid backed sender.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		apiKey: apiKey,
		host:   sendGridHost,
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", msg.FallbackHTML))
	m.AddCategories(msg.Template)
	return m
}

// Send implements Sender. The SendGrid client is not context aware, so a cancelled
// context only stops the message before the request is made.
func (s *SendGridSender) Send(ctx context.Context, msg Message) (Result, error) {
	if err := msg.Validate(); err != nil {
		return Result{}, err
	}
	if msg.FallbackHTML == "" {
		return Result{}, fmt.Errorf("%w: sendgrid requires rendered html", ErrInvalidMessage)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	req := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return Result{}, fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return Result{}, fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}

	var id string
	if values := res.Headers["X-Message-Id"]; len(values) > 0 {
		id = values[0]
	}
	return Result{Success: true, Provider: "sendgrid", MessageID: id}, nil
}
