package subscriber

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/campusconnect-backend/internal/adapter/memory"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscribe_NormalizesAndDeduplicates(t *testing.T) {
	t.Parallel()
	svc := NewService(testLogger(), memory.NewSubscriberRegistry(nil))
	ctx := context.Background()

	outcome, err := svc.Subscribe(ctx, "  Ada@Campus.edu ")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAccepted, outcome)

	outcome, err = svc.Subscribe(ctx, "ada@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, domain.SubscribeAlreadySubscribed, outcome)

	emails, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@campus.edu"}, emails)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"no at", "campus.edu"},
		{"display name", "Ada <ada@campus.edu>"},
		{"two addresses", "a@x.edu, b@x.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := &registryMock{}
			svc := NewService(testLogger(), reg)

			_, err := svc.Subscribe(context.Background(), tt.email)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, reg.AddCalls())
		})
	}
}

func TestSubscribe_RegistryError(t *testing.T) {
	t.Parallel()

	regErr := errors.New("connection reset")
	reg := &registryMock{
		AddFunc: func(context.Context, string) (domain.SubscribeOutcome, error) {
			return "", regErr
		},
	}
	svc := NewService(testLogger(), reg)

	_, err := svc.Subscribe(context.Background(), "ada@campus.edu")
	require.ErrorIs(t, err, regErr)
}

func TestSubscribe_ConcurrentVariantsAcceptOnce(t *testing.T) {
	t.Parallel()
	svc := NewService(testLogger(), memory.NewSubscriberRegistry(nil))

	variants := []string{"ada@campus.edu", "ADA@campus.edu", " Ada@Campus.Edu", "ada@CAMPUS.edu "}
	const rounds = 25

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < rounds; i++ {
		for _, v := range variants {
			wg.Add(1)
			go func(email string) {
				defer wg.Done()
				outcome, err := svc.Subscribe(context.Background(), email)
				if !assert.NoError(t, err) {
					return
				}
				if outcome == domain.SubscribeAccepted {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}(v)
		}
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	emails, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@campus.edu"}, emails)
}

func TestSnapshot_ExcludesLaterSubscribers(t *testing.T) {
	t.Parallel()
	svc := NewService(testLogger(), memory.NewSubscriberRegistry(nil))
	ctx := context.Background()

	for _, e := range []string{"a@x.edu", "b@x.edu"} {
		_, err := svc.Subscribe(ctx, e)
		require.NoError(t, err)
	}
	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, "c@x.edu")
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.edu", "b@x.edu"}, snap)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c@x.edu", all[2].Email)
}

func TestSnapshot_Error(t *testing.T) {
	t.Parallel()

	reg := &registryMock{
		SnapshotFunc: func(context.Context) ([]string, error) {
			return nil, errors.New("boom")
		},
	}
	svc := NewService(testLogger(), reg)

	_, err := svc.Snapshot(context.Background())
	assert.ErrorContains(t, err, "snapshot subscribers")
}
