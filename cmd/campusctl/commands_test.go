package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/campusconnect-backend/internal/adapter/mail"
	"github.com/heartmarshall/campusconnect-backend/internal/app"
	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
)

var fixedNow = time.Date(2027, 1, 10, 12, 0, 0, 0, time.UTC)

func memoryEnv(t *testing.T) (*env, envLoader) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Notify:   config.NotifyConfig{Concurrency: 2, SubjectPrefix: "CampusConnect Announcement"},
		Feed:     config.FeedConfig{Location: time.UTC},
	}

	st, err := app.OpenStorage(context.Background(), cfg.Database, logger)
	require.NoError(t, err)
	svc, err := app.NewServices(context.Background(), cfg, st, mail.NewLogSender(logger), logger)
	require.NoError(t, err)

	e := &env{svc: svc, close: func() {}, now: func() time.Time { return fixedNow }}
	return e, func(context.Context) (*env, error) { return e, nil }
}

func run(t *testing.T, load envLoader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(load)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubscribersAddAndList(t *testing.T) {
	_, load := memoryEnv(t)

	out, err := run(t, load, "subscribers", "add", " Student@Campus.edu ", "student@campus.edu")
	require.NoError(t, err)
	assert.Contains(t, out, "student@campus.edu: accepted")
	assert.Contains(t, out, "student@campus.edu: already_subscribed")

	out, err = run(t, load, "subscribers", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "EMAIL")
	assert.Equal(t, 1, strings.Count(out, "student@campus.edu"))
}

func TestSubscribersAddInvalid(t *testing.T) {
	_, load := memoryEnv(t)

	_, err := run(t, load, "subscribers", "add", "not-an-email")
	require.Error(t, err)
}

func TestSubmissionsListFiltersAndRemove(t *testing.T) {
	e, load := memoryEnv(t)
	ctx := context.Background()

	_, err := e.svc.Submissions.Create(ctx, submission.CreateInput{
		Title: "Hack Night", Category: "event", Date: "2027-01-13", Time: "18:30", Tags: []string{"coding", "pizza"},
	})
	require.NoError(t, err)
	_, err = e.svc.Submissions.Create(ctx, submission.CreateInput{Title: "Internship", Category: "opportunity", TBA: true})
	require.NoError(t, err)

	out, err := run(t, load, "submissions", "list", "--tab", "events")
	require.NoError(t, err)
	assert.Contains(t, out, "Hack Night")
	assert.Contains(t, out, "coding,pizza")
	assert.NotContains(t, out, "Internship")

	out, err = run(t, load, "submissions", "list", "-q", "intern")
	require.NoError(t, err)
	assert.Contains(t, out, "Internship")
	assert.Contains(t, out, "TBA")

	_, err = run(t, load, "submissions", "list", "--tab", "memes")
	require.Error(t, err)

	out, err = run(t, load, "submissions", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "removed submission 1")

	_, err = run(t, load, "submissions", "remove", "1")
	require.Error(t, err)
	_, err = run(t, load, "submissions", "remove", "abc")
	require.Error(t, err)
}

func TestBroadcastReportsCounts(t *testing.T) {
	e, load := memoryEnv(t)
	ctx := context.Background()

	_, err := e.svc.Subscribers.Subscribe(ctx, "a@campus.edu")
	require.NoError(t, err)
	_, err = e.svc.Subscribers.Subscribe(ctx, "b@campus.edu")
	require.NoError(t, err)

	out, err := run(t, load, "broadcast", "--subject", "Hello", "--text", "Campus is open")
	require.NoError(t, err)
	assert.Contains(t, out, "sent: 2, failed: 0")

	_, err = run(t, load, "broadcast", "--text", "no subject")
	require.Error(t, err)
}

func TestBroadcastAnnounce(t *testing.T) {
	e, load := memoryEnv(t)
	ctx := context.Background()

	_, err := e.svc.Subscribers.Subscribe(ctx, "a@campus.edu")
	require.NoError(t, err)
	_, err = e.svc.Submissions.Create(ctx, submission.CreateInput{Title: "Library hours", Category: "announcement"})
	require.NoError(t, err)

	out, err := run(t, load, "broadcast", "announce", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "sent: 1, failed: 0")

	_, err = run(t, load, "broadcast", "announce", "9")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, func(context.Context) (*env, error) {
		t.Fatal("version must not open storage")
		return nil, nil
	}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, app.Version)
}
