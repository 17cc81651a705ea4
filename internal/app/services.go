package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/campusconnect-backend/internal/adapter/mail"
	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/internal/service/broadcast"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
	"github.com/heartmarshall/campusconnect-backend/internal/service/subscriber"
	"github.com/heartmarshall/campusconnect-backend/internal/service/vote"
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient string, msg domain.Message) error
}

// Services is the assembled service layer shared by the server and the CLIs.
type Services struct {
	Submissions *submission.Service
	Subscribers *subscriber.Service
	Broadcasts  *broadcast.Service
}

// NewSender returns the SMTP sender when mail is configured and a log-only
// sender otherwise.
func NewSender(cfg config.MailConfig, logger *slog.Logger) (Sender, error) {
	if !cfg.Enabled() {
		logger.Warn("mail.smtp_host is empty, broadcasts are logged instead of sent")
		return mail.NewLogSender(logger), nil
	}

	s, err := mail.NewSMTPSender(logger, mail.SMTPOptions{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.Username,
		Password:  cfg.Password,
		From:      cfg.From,
		TLSPolicy: cfg.TLSPolicy,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("smtp sender: %w", err)
	}
	return s, nil
}

// NewServices wires the services over st and registers the vote seeds of
// every hydrated submission.
func NewServices(ctx context.Context, cfg *config.Config, st *Storage, sender Sender, logger *slog.Logger) (*Services, error) {
	loc := cfg.Feed.Location
	if loc == nil {
		loc = time.UTC
	}

	subs := submission.NewService(logger, st.Submissions, vote.NewLedger(), loc)
	if err := subs.TrackExisting(ctx); err != nil {
		return nil, fmt.Errorf("track votes: %w", err)
	}

	return &Services{
		Submissions: subs,
		Subscribers: subscriber.NewService(logger, st.Subscribers),
		Broadcasts:  broadcast.NewService(logger, st.Subscribers, sender, cfg.Notify, loc),
	}, nil
}
