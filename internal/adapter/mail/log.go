package mail

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// LogSender writes messages to the log instead of delivering them.
// It is used when no SMTP host is configured.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{log: logger.With("adapter", "mail_log")}
}

// Send logs msg and always succeeds.
func (s *LogSender) Send(ctx context.Context, recipient string, msg domain.Message) error {
	s.log.InfoContext(ctx, "mail not sent (no smtp host)",
		slog.String("recipient", recipient),
		slog.String("subject", msg.Subject),
		slog.Int("text_bytes", len(msg.Text)),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
