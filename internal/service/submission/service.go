package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type submissionStore interface {
	Create(ctx context.Context, sub domain.Submission) (*domain.Submission, error)
	List(ctx context.Context) ([]domain.Submission, error)
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
	Remove(ctx context.Context, id int64) error
}

type voteLedger interface {
	Track(submissionID int64, seed int)
	Toggle(sessionID string, submissionID int64) (count int, voted bool)
	Count(submissionID int64) int
	HasVoted(sessionID string, submissionID int64) bool
	Forget(submissionID int64)
}

// Service owns submission creation, browsing and voting.
type Service struct {
	store submissionStore
	votes voteLedger
	log   *slog.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewService creates a new Submission service. loc is the timezone used to
// interpret submitted dates and times; nil means UTC.
func NewService(
	log *slog.Logger,
	store submissionStore,
	votes voteLedger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store: store,
		votes: votes,
		log:   log.With("service", "submission"),
		loc:   loc,
		now:   time.Now,
	}
}

// TrackExisting registers every stored submission's vote seed with the
// ledger. Call it once after the store has been hydrated.
func (s *Service) TrackExisting(ctx context.Context) error {
	subs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		s.votes.Track(sub.ID, sub.VoteSeed)
	}
	return nil
}

func (s *Service) overlay(sessionID string, sub domain.Submission) domain.FeedItem {
	item := domain.FeedItem{
		Submission: sub,
		VoteCount:  s.votes.Count(sub.ID),
	}
	if sessionID != "" {
		item.HasVoted = s.votes.HasVoted(sessionID, sub.ID)
	}
	return item
}
