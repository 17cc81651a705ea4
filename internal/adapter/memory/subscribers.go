package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type subscriberPersister interface {
	Insert(ctx context.Context, sub domain.Subscriber) (inserted bool, err error)
	FetchAll(ctx context.Context) ([]domain.Subscriber, error)
}

// SubscriberRegistry is the canonical set of subscriber emails, kept in
// subscription order.
type SubscriberRegistry struct {
	keys keyLock

	mu      sync.RWMutex
	emails  map[string]struct{}
	order   []domain.Subscriber
	persist subscriberPersister
	now     func() time.Time
}

// NewSubscriberRegistry creates an empty registry. persist may be nil.
func NewSubscriberRegistry(persist subscriberPersister) *SubscriberRegistry {
	return &SubscriberRegistry{
		emails:  make(map[string]struct{}),
		persist: persist,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Load replaces the registry contents with the persisted subscribers.
func (r *SubscriberRegistry) Load(ctx context.Context) (int, error) {
	if r.persist == nil {
		return 0, nil
	}

	subs, err := r.persist.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch subscribers: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.emails = make(map[string]struct{}, len(subs))
	r.order = r.order[:0]
	for _, s := range subs {
		email := domain.NormalizeEmail(s.Email)
		if _, dup := r.emails[email]; dup {
			continue
		}
		r.emails[email] = struct{}{}
		r.order = append(r.order, domain.Subscriber{Email: email, SubscribedAt: s.SubscribedAt})
	}
	return len(r.order), nil
}

// Add inserts email if it is absent. The check and the write are atomic for
// a given normalized email; different emails do not block each other.
func (r *SubscriberRegistry) Add(ctx context.Context, email string) (domain.SubscribeOutcome, error) {
	email = domain.NormalizeEmail(email)

	unlock := r.keys.Lock(email)
	defer unlock()

	if r.contains(email) {
		return domain.SubscribeAlreadySubscribed, nil
	}

	sub := domain.Subscriber{Email: email, SubscribedAt: r.now()}

	if r.persist != nil {
		inserted, err := r.persist.Insert(ctx, sub)
		if err != nil {
			return "", fmt.Errorf("persist subscriber: %w", err)
		}
		if !inserted {
			// Persisted by someone else (another process on the same
			// database); adopt it so the set stays consistent.
			r.append(sub)
			return domain.SubscribeAlreadySubscribed, nil
		}
	}

	r.append(sub)
	return domain.SubscribeAccepted, nil
}

// Snapshot returns the emails of every subscriber added before the call,
// in subscription order.
func (r *SubscriberRegistry) Snapshot(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	for i, s := range r.order {
		out[i] = s.Email
	}
	return out, nil
}

// List returns every subscriber with its subscription time.
func (r *SubscriberRegistry) List(_ context.Context) ([]domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Subscriber, len(r.order))
	copy(out, r.order)
	return out, nil
}

func (r *SubscriberRegistry) contains(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.emails[email]
	return ok
}

func (r *SubscriberRegistry) append(sub domain.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails[sub.Email] = struct{}{}
	r.order = append(r.order, sub)
}
