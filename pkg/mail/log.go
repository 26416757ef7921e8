package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSender writes messages to the logger instead of delivering them. Used in development.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(_ context.Context, msg Message) (Result, error) {
	if err := msg.Validate(); err != nil {
		return Result{}, err
	}
	id := uuid.NewString()
	s.logger.Info("email",
		zap.String("message_id", id),
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template),
		zap.Any("template_data", msg.TemplateData),
	)
	return Result{Success: true, Provider: "log", MessageID: id}, nil
}
