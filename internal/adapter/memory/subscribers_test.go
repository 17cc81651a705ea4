package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

func TestSubscriberRegistry_AddDeduplicatesCaseInsensitively(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewSubscriberRegistry(nil)

	got, err := reg.Add(ctx, "A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAccepted, got)

	got, err = reg.Add(ctx, "  a@example.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAlreadySubscribed, got)

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, snap)
}

func TestSubscriberRegistry_SnapshotOrderAndIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewSubscriberRegistry(nil)

	for _, e := range []string{"c@x.io", "a@x.io", "b@x.io"} {
		_, err := reg.Add(ctx, e)
		require.NoError(t, err)
	}

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c@x.io", "a@x.io", "b@x.io"}, snap)

	_, err = reg.Add(ctx, "d@x.io")
	require.NoError(t, err)
	assert.Len(t, snap, 3, "earlier snapshot must not change")
}

func TestSubscriberRegistry_WritesThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &fakeSubscriberDB{}
	reg := NewSubscriberRegistry(db)

	_, err := reg.Add(ctx, "a@x.io")
	require.NoError(t, err)
	_, err = reg.Add(ctx, "A@X.IO")
	require.NoError(t, err)

	assert.Equal(t, 1, db.inserts, "duplicate must be rejected before persistence")
	require.Len(t, db.rows, 1)
	assert.Equal(t, "a@x.io", db.rows[0].Email)
	assert.False(t, db.rows[0].SubscribedAt.IsZero())
}

func TestSubscriberRegistry_PersistedElsewhereIsAlreadySubscribed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &fakeSubscriberDB{rows: []domain.Subscriber{{Email: "a@x.io"}}}
	reg := NewSubscriberRegistry(db)

	got, err := reg.Add(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAlreadySubscribed, got)

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.io"}, snap)
}

func TestSubscriberRegistry_PersistFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &fakeSubscriberDB{insertErr: errors.New("timeout")}
	reg := NewSubscriberRegistry(db)

	_, err := reg.Add(ctx, "a@x.io")
	require.Error(t, err)

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestSubscriberRegistry_Load(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := &fakeSubscriberDB{rows: []domain.Subscriber{
		{Email: "b@x.io"},
		{Email: "A@X.io"},
		{Email: "a@x.io"},
	}}
	reg := NewSubscriberRegistry(db)

	n, err := reg.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := reg.Add(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAlreadySubscribed, got)
}

func TestSubscriberRegistry_ConcurrentSameEmailAcceptsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewSubscriberRegistry(&fakeSubscriberDB{})

	const n = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "Dup@x.io"
			if i%2 == 0 {
				email = "dup@X.IO"
			}
			got, err := reg.Add(ctx, email)
			if err != nil {
				t.Errorf("add: %v", err)
				return
			}
			if got == domain.SubscribeAccepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dup@x.io"}, snap)
}

func TestSubscriberRegistry_ConcurrentDistinctEmails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := NewSubscriberRegistry(nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.Add(ctx, fmt.Sprintf("user%d@x.io", i)); err != nil {
				t.Errorf("add: %v", err)
			}
		}(i)
	}
	wg.Wait()

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap, 100)
}

func TestKeyLock_ReleasesEntries(t *testing.T) {
	t.Parallel()

	var k keyLock
	unlock := k.Lock("a")
	unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.locks)
}
