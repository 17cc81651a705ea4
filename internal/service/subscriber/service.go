package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type registry interface {
	Add(ctx context.Context, email string) (domain.SubscribeOutcome, error)
	Snapshot(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
}

// Service manages the notification roster.
type Service struct {
	log      *slog.Logger
	registry registry
}

// NewService creates a new subscriber service.
func NewService(logger *slog.Logger, registry registry) *Service {
	return &Service{
		log:      logger.With("service", "subscriber"),
		registry: registry,
	}
}

// Subscribe adds email to the roster. Re-subscribing an existing address
// (in any letter case) is a success with SubscribeAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, email string) (domain.SubscribeOutcome, error) {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return "", err
	}

	outcome, err := s.registry.Add(ctx, email)
	if err != nil {
		return "", fmt.Errorf("subscribe: %w", err)
	}

	if outcome == domain.SubscribeAccepted {
		s.log.InfoContext(ctx, "subscriber added", slog.String("domain", emailDomain(email)))
	}
	return outcome, nil
}

// Snapshot returns the emails subscribed before the call, in subscription order.
func (s *Service) Snapshot(ctx context.Context) ([]string, error) {
	emails, err := s.registry.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot subscribers: %w", err)
	}
	return emails, nil
}

// List returns every subscriber with its subscription time.
func (s *Service) List(ctx context.Context) ([]domain.Subscriber, error) {
	subs, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
