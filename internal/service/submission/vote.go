package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// VoteResult is the state of a submission's votes after a toggle.
type VoteResult struct {
	SubmissionID int64
	Count        int
	Voted        bool
}

// ToggleVote flips sessionID's vote on submission id.
// Returns domain.ErrNotFound for unknown submissions.
func (s *Service) ToggleVote(ctx context.Context, sessionID string, id int64) (*VoteResult, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session", "required")
	}

	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	s.votes.Track(sub.ID, sub.VoteSeed)
	count, voted := s.votes.Toggle(sessionID, sub.ID)

	// A concurrent Remove may have forgotten the tally before Track ran.
	if _, err := s.store.GetByID(ctx, sub.ID); err != nil {
		s.votes.Forget(sub.ID)
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	s.log.DebugContext(ctx, "vote toggled",
		slog.Int64("submission_id", sub.ID),
		slog.Bool("voted", voted),
		slog.Int("count", count),
	)

	return &VoteResult{SubmissionID: sub.ID, Count: count, Voted: voted}, nil
}
