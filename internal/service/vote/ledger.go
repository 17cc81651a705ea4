// Package vote implements the per-session vote ledger. Vote state lives only
// for the lifetime of the process.
package vote

import (
	"sync"
)

// tally is the vote state of a single submission. Its mutex makes each
// toggle an atomic check-then-write for every session on that submission.
type tally struct {
	mu    sync.Mutex
	seed  int
	votes map[string]bool
	count int
}

// Ledger tracks one boolean vote per (session, submission) pair on top of
// each submission's creation-time seed.
type Ledger struct {
	mu      sync.RWMutex
	tallies map[int64]*tally
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{tallies: make(map[int64]*tally)}
}

// Track registers a submission with its baseline seed. Calling Track again
// for a tracked submission is a no-op, so existing votes are never reset.
func (l *Ledger) Track(submissionID int64, seed int) {
	l.getOrCreate(submissionID, seed)
}

// Toggle flips the vote of sessionID on submissionID and returns the new
// count together with the session's resulting vote state. Untracked
// submissions are tracked with a zero seed.
func (l *Ledger) Toggle(sessionID string, submissionID int64) (count int, voted bool) {
	t := l.getOrCreate(submissionID, 0)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.votes[sessionID] {
		t.votes[sessionID] = false
		t.count--
	} else {
		t.votes[sessionID] = true
		t.count++
	}
	return total(t), t.votes[sessionID]
}

// Count returns seed plus the number of sessions currently voting.
func (l *Ledger) Count(submissionID int64) int {
	t := l.get(submissionID)
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return total(t)
}

// HasVoted reports whether sessionID currently has a vote on submissionID.
func (l *Ledger) HasVoted(sessionID string, submissionID int64) bool {
	t := l.get(submissionID)
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.votes[sessionID]
}

// Forget drops all state for submissionID.
func (l *Ledger) Forget(submissionID int64) {
	l.mu.Lock()
	delete(l.tallies, submissionID)
	l.mu.Unlock()
}

func (l *Ledger) get(submissionID int64) *tally {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tallies[submissionID]
}

func (l *Ledger) getOrCreate(submissionID int64, seed int) *tally {
	if t := l.get(submissionID); t != nil {
		return t
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.tallies[submissionID]; ok {
		return t
	}
	if seed < 0 {
		seed = 0
	}
	t := &tally{seed: seed, votes: make(map[string]bool)}
	l.tallies[submissionID] = t
	return t
}

// total must be called with t.mu held.
func total(t *tally) int {
	n := t.seed + t.count
	if n < 0 {
		return 0
	}
	return n
}
