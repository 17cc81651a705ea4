package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// Create validates input and appends a new submission to the store.
// The creation-time vote seed becomes the ledger baseline.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Submission, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	sub, err := s.store.Create(ctx, domain.Submission{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Category:    domain.Category(strings.TrimSpace(input.Category)),
		OccursAt:    input.occursAt(now, s.loc),
		Tags:        domain.NormalizeTags(input.Tags),
		VoteSeed:    input.Votes,
		CreatedAt:   now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.votes.Track(sub.ID, sub.VoteSeed)

	s.log.InfoContext(ctx, "submission created",
		slog.Int64("submission_id", sub.ID),
		slog.String("category", sub.Category.String()),
		slog.Int("tags", len(sub.Tags)),
	)

	return sub, nil
}

// Remove deletes a submission and drops its vote state.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove submission: %w", err)
	}
	s.votes.Forget(id)

	s.log.InfoContext(ctx, "submission removed", slog.Int64("submission_id", id))
	return nil
}
