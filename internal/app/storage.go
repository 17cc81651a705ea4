package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/campusconnect-backend/internal/adapter/memory"
	"github.com/heartmarshall/campusconnect-backend/internal/adapter/postgres"
	pgsubmission "github.com/heartmarshall/campusconnect-backend/internal/adapter/postgres/submission"
	pgsubscriber "github.com/heartmarshall/campusconnect-backend/internal/adapter/postgres/subscriber"
	"github.com/heartmarshall/campusconnect-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/transport/rest"
)

// Storage holds the canonical in-memory stores and whatever durable
// backend they write through to.
type Storage struct {
	Submissions *memory.SubmissionStore
	Subscribers *memory.SubscriberRegistry
	// Components is handed to the health handler.
	Components map[string]rest.Pinger

	closers []func()
}

// Close releases the durable backend, if any.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// sqlPinger adapts *sql.DB to rest.Pinger.
type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// OpenStorage builds the stores for the configured driver and hydrates them
// from the durable backend.
func OpenStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	st := &Storage{Components: map[string]rest.Pinger{}}

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)

		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				st.Close()
				return nil, err
			}
		}

		st.Submissions = memory.NewSubmissionStore(pgsubmission.New(pool, postgres.NewTxManager(pool)))
		st.Subscribers = memory.NewSubscriberRegistry(pgsubscriber.New(pool))
		st.Components["database"] = pool

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = db.Close() })

		st.Submissions = memory.NewSubmissionStore(sqlite.NewSubmissionRepo(db))
		st.Subscribers = memory.NewSubscriberRegistry(sqlite.NewSubscriberRepo(db))
		st.Components["database"] = sqlPinger{db: db}

	case config.DriverMemory, "":
		st.Submissions = memory.NewSubmissionStore(nil)
		st.Subscribers = memory.NewSubscriberRegistry(nil)

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	subs, err := st.Submissions.Load(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	emails, err := st.Subscribers.Load(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load subscribers: %w", err)
	}

	logger.InfoContext(ctx, "storage ready",
		slog.String("driver", driverName(cfg.Driver)),
		slog.Int("submissions", subs),
		slog.Int("subscribers", emails),
	)

	return st, nil
}

func driverName(d string) string {
	if d == "" {
		return config.DriverMemory
	}
	return d
}
