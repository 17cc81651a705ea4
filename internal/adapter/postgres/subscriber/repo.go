// Package subscriber persists the notification roster in PostgreSQL.
package subscriber

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/campusconnect-backend/internal/adapter/postgres"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides subscriber persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subscriber repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert stores sub unless an equal email (case-insensitive) already exists.
// inserted is false when the row was already present.
func (r *Repo) Insert(ctx context.Context, sub domain.Subscriber) (bool, error) {
	query, args, err := psql.Insert("subscribers").
		Columns("email", "subscribed_at").
		Values(sub.Email, sub.SubscribedAt).
		Suffix("ON CONFLICT (lower(email)) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert subscriber: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "subscriber", sub.Email)
	}
	return tag.RowsAffected() == 1, nil
}

// FetchAll returns every subscriber in subscription order.
func (r *Repo) FetchAll(ctx context.Context) ([]domain.Subscriber, error) {
	query, args, err := psql.Select("email", "subscribed_at").
		From("subscribers").
		OrderBy("subscribed_at", "email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select subscribers: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscriber, 0)
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.Email, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		s.SubscribedAt = s.SubscribedAt.UTC()
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return subs, nil
}
