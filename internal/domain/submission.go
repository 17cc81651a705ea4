package domain

import "time"

// Submission is one posted feed item. Records are immutable once created;
// vote counts are overlaid by the vote ledger and never stored here.
type Submission struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Category    Category
	OccursAt    *time.Time
	Tags        []string
	VoteSeed    int
	CreatedAt   time.Time
}

// DateTBA reports whether the submission has no scheduled date.
func (s *Submission) DateTBA() bool {
	return s.OccursAt == nil
}

// FeedItem is a submission as seen by one viewer session.
type FeedItem struct {
	Submission
	VoteCount int
	HasVoted  bool
}
