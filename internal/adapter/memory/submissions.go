// Package memory holds the canonical in-process submission store and
// subscriber registry. Both optionally write through to a durable
// persistence adapter and can be hydrated from it on startup.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type submissionPersister interface {
	Insert(ctx context.Context, sub *domain.Submission) error
	FetchAll(ctx context.Context) ([]domain.Submission, error)
	Delete(ctx context.Context, id int64) error
	// LastID is the largest id ever persisted, including removed rows.
	LastID(ctx context.Context) (int64, error)
}

// SubmissionStore is the append-only, canonical collection of submissions.
type SubmissionStore struct {
	mu      sync.RWMutex
	items   []domain.Submission
	lastID  int64
	persist submissionPersister
}

// NewSubmissionStore creates an empty store. persist may be nil, in which
// case nothing outlives the process.
func NewSubmissionStore(persist submissionPersister) *SubmissionStore {
	return &SubmissionStore{persist: persist}
}

// Load replaces the store contents with the persisted submissions, ordered
// by id. The id high-water mark continues from the largest id the
// persistence layer has ever seen, so removed ids stay retired.
func (s *SubmissionStore) Load(ctx context.Context) (int, error) {
	if s.persist == nil {
		return 0, nil
	}

	subs, err := s.persist.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch submissions: %w", err)
	}
	last, err := s.persist.LastID(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch last submission id: %w", err)
	}
	slices.SortStableFunc(subs, func(a, b domain.Submission) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = subs
	s.lastID = last
	for _, sub := range subs {
		if sub.ID > s.lastID {
			s.lastID = sub.ID
		}
	}
	return len(subs), nil
}

// Create assigns the next id to sub, persists it and appends it.
// Ids are never reused, even after Remove.
func (s *SubmissionStore) Create(ctx context.Context, sub domain.Submission) (*domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.lastID + 1
	sub.Tags = cloneTags(sub.Tags)

	if s.persist != nil {
		if err := s.insert(ctx, &sub); err != nil {
			return nil, err
		}
	}

	s.lastID = sub.ID
	s.items = append(s.items, sub)

	out := sub
	out.Tags = cloneTags(sub.Tags)
	return &out, nil
}

// insertAttempts bounds how often Create re-reads the id high-water mark
// after losing an id to another writer on the same database.
const insertAttempts = 3

// insert persists sub, moving it past ids taken by other processes sharing
// the database. Must be called with s.mu held.
func (s *SubmissionStore) insert(ctx context.Context, sub *domain.Submission) error {
	for attempt := 1; ; attempt++ {
		err := s.persist.Insert(ctx, sub)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) || attempt == insertAttempts {
			return fmt.Errorf("persist submission %d: %w", sub.ID, err)
		}

		last, lerr := s.persist.LastID(ctx)
		if lerr != nil {
			return fmt.Errorf("fetch last submission id: %w", lerr)
		}
		s.lastID = max(s.lastID, last, sub.ID)
		sub.ID = s.lastID + 1
	}
}

// List returns a snapshot of every submission in creation order.
func (s *SubmissionStore) List(_ context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Submission, len(s.items))
	for i, sub := range s.items {
		sub.Tags = cloneTags(sub.Tags)
		out[i] = sub
	}
	return out, nil
}

// GetByID returns a copy of the submission with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (s *SubmissionStore) GetByID(_ context.Context, id int64) (*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("submission %d: %w", id, domain.ErrNotFound)
	}
	out := s.items[i]
	out.Tags = cloneTags(out.Tags)
	return &out, nil
}

// Remove deletes the submission with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (s *SubmissionStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("submission %d: %w", id, domain.ErrNotFound)
	}

	if s.persist != nil {
		if err := s.persist.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete submission %d: %w", id, err)
		}
	}

	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// indexOf must be called with s.mu held. Items are sorted by id, so a
// binary search is enough.
func (s *SubmissionStore) indexOf(id int64) int {
	i, found := slices.BinarySearchFunc(s.items, id, func(sub domain.Submission, id int64) int {
		switch {
		case sub.ID < id:
			return -1
		case sub.ID > id:
			return 1
		}
		return 0
	})
	if !found {
		return -1
	}
	return i
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
