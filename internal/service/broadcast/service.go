package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type roster interface {
	Snapshot(ctx context.Context) ([]string, error)
}

type sender interface {
	Send(ctx context.Context, recipient string, msg domain.Message) error
}

// Service fans a message out to every subscriber and reports per-recipient
// outcomes. A failed send never aborts the rest of the batch.
type Service struct {
	log    *slog.Logger
	roster roster
	sender sender
	limit  int
	render *Renderer
}

// NewService creates a new broadcast service. loc is the timezone used when
// rendering announcement dates; nil means UTC.
func NewService(
	logger *slog.Logger,
	roster roster,
	sender sender,
	cfg config.NotifyConfig,
	loc *time.Location,
) *Service {
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	return &Service{
		log:    logger.With("service", "broadcast"),
		roster: roster,
		sender: sender,
		limit:  limit,
		render: NewRenderer(cfg.SubjectPrefix, cfg.SiteURL, loc),
	}
}

// Broadcast sends msg once to every subscriber present at call time.
// The returned error is non-nil only when the roster cannot be read.
func (s *Service) Broadcast(ctx context.Context, msg domain.Message) (domain.BroadcastReport, error) {
	if err := validateMessage(msg); err != nil {
		return domain.BroadcastReport{}, err
	}

	recipients, err := s.roster.Snapshot(ctx)
	if err != nil {
		return domain.BroadcastReport{}, fmt.Errorf("broadcast: snapshot: %w", err)
	}

	return s.deliver(ctx, msg, recipients), nil
}

// reasonNotSubscribed marks retry entries that are not on the roster.
const reasonNotSubscribed = "not subscribed"

// Retry re-sends msg to the recipients of failed that are still on the
// roster. Other entries are reported as failed and never contacted.
func (s *Service) Retry(ctx context.Context, msg domain.Message, failed []domain.DeliveryFailure) (domain.BroadcastReport, error) {
	if err := validateMessage(msg); err != nil {
		return domain.BroadcastReport{}, err
	}

	roster, err := s.roster.Snapshot(ctx)
	if err != nil {
		return domain.BroadcastReport{}, fmt.Errorf("broadcast: snapshot: %w", err)
	}
	subscribed := make(map[string]struct{}, len(roster))
	for _, email := range roster {
		subscribed[domain.NormalizeEmail(email)] = struct{}{}
	}

	var (
		recipients []string
		rejected   []domain.DeliveryFailure
		seen       = make(map[string]struct{}, len(failed))
	)
	for _, f := range failed {
		email := domain.NormalizeEmail(f.Recipient)
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		if _, ok := subscribed[email]; !ok {
			rejected = append(rejected, domain.DeliveryFailure{Recipient: f.Recipient, Reason: reasonNotSubscribed})
			continue
		}
		recipients = append(recipients, email)
	}

	if len(rejected) > 0 {
		s.log.WarnContext(ctx, "retry skipped unknown recipients", slog.Int("skipped", len(rejected)))
	}

	report := s.deliver(ctx, msg, recipients)
	report.Failed = append(report.Failed, rejected...)
	return report, nil
}

// Announce renders sub with the announcement template and broadcasts it.
func (s *Service) Announce(ctx context.Context, sub domain.Submission) (domain.BroadcastReport, error) {
	msg, err := s.render.Render(sub)
	if err != nil {
		return domain.BroadcastReport{}, fmt.Errorf("broadcast: render announcement: %w", err)
	}
	return s.Broadcast(ctx, msg)
}

// Preview renders sub without sending anything.
func (s *Service) Preview(sub domain.Submission) (domain.Message, error) {
	return s.render.Render(sub)
}

func (s *Service) deliver(ctx context.Context, msg domain.Message, recipients []string) domain.BroadcastReport {
	report := domain.NewBroadcastReport()
	if len(recipients) == 0 {
		return report
	}

	start := time.Now()
	results := make([]error, len(recipients))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, rcpt := range recipients {
		g.Go(func() error {
			results[i] = s.sendOne(ctx, rcpt, msg)
			return nil
		})
	}
	_ = g.Wait()

	for i, rcpt := range recipients {
		if err := results[i]; err != nil {
			report.Failed = append(report.Failed, domain.DeliveryFailure{Recipient: rcpt, Reason: err.Error()})
			continue
		}
		report.Sent = append(report.Sent, rcpt)
	}

	s.log.InfoContext(ctx, "broadcast finished",
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(recipients)),
		slog.Int("sent", len(report.Sent)),
		slog.Int("failed", len(report.Failed)),
		slog.Duration("duration", time.Since(start)),
	)
	return report
}

func (s *Service) sendOne(ctx context.Context, recipient string, msg domain.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "panic in mail sender", slog.Any("panic", r))
			err = fmt.Errorf("sender panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.sender.Send(ctx, recipient, msg)
}

func validateMessage(msg domain.Message) error {
	var errs domain.FieldErrors
	if strings.TrimSpace(msg.Subject) == "" {
		errs.Add("subject", "required")
	}
	if strings.TrimSpace(msg.Text) == "" && strings.TrimSpace(msg.HTML) == "" {
		errs.Add("body", "text or html required")
	}
	return errs.Err()
}
