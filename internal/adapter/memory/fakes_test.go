package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// fakeSubmissionDB is an in-memory stand-in for a durable submission adapter.
type fakeSubmissionDB struct {
	mu        sync.Mutex
	rows      map[int64]domain.Submission
	lastID    int64
	insertErr error
	deleteErr error
	fetchErr  error
}

func newFakeSubmissionDB(rows ...domain.Submission) *fakeSubmissionDB {
	db := &fakeSubmissionDB{rows: make(map[int64]domain.Submission)}
	for _, r := range rows {
		db.rows[r.ID] = r
		db.lastID = max(db.lastID, r.ID)
	}
	return db
}

func (f *fakeSubmissionDB) Insert(_ context.Context, sub *domain.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, taken := f.rows[sub.ID]; taken || sub.ID <= f.lastID {
		return fmt.Errorf("submission %d: %w", sub.ID, domain.ErrAlreadyExists)
	}
	f.rows[sub.ID] = *sub
	f.lastID = max(f.lastID, sub.ID)
	return nil
}

func (f *fakeSubmissionDB) FetchAll(_ context.Context) ([]domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]domain.Submission, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSubmissionDB) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeSubmissionDB) LastID(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastID, nil
}

// fakeSubscriberDB is an in-memory stand-in for a durable subscriber adapter.
type fakeSubscriberDB struct {
	mu        sync.Mutex
	rows      []domain.Subscriber
	inserts   int
	insertErr error
}

func (f *fakeSubscriberDB) Insert(_ context.Context, sub domain.Subscriber) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return false, f.insertErr
	}
	for _, r := range f.rows {
		if r.Email == sub.Email {
			return false, nil
		}
	}
	f.rows = append(f.rows, sub)
	return true, nil
}

func (f *fakeSubscriberDB) FetchAll(_ context.Context) ([]domain.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Subscriber, len(f.rows))
	copy(out, f.rows)
	return out, nil
}
