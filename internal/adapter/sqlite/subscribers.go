package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// SubscriberRepo stores the notification roster.
type SubscriberRepo struct {
	db *sql.DB
}

// NewSubscriberRepo creates a subscriber repository over db.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo {
	return &SubscriberRepo{db: db}
}

// Insert stores sub unless an equal email (case-insensitive) already exists.
func (r *SubscriberRepo) Insert(ctx context.Context, sub domain.Subscriber) (bool, error) {
	query, args, err := builder.Insert("subscribers").
		Options("OR IGNORE").
		Columns("email", "subscribed_at").
		Values(sub.Email, formatTime(sub.SubscribedAt)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert subscriber: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapError(err, "subscriber", sub.Email)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert subscriber %s: %w", sub.Email, err)
	}
	return n == 1, nil
}

// FetchAll returns every subscriber in subscription order.
func (r *SubscriberRepo) FetchAll(ctx context.Context) ([]domain.Subscriber, error) {
	query, args, err := builder.Select("email", "subscribed_at").
		From("subscribers").
		OrderBy("subscribed_at", "rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select subscribers: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscriber, 0)
	for rows.Next() {
		var (
			s  domain.Subscriber
			at string
		)
		if err := rows.Scan(&s.Email, &at); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		if s.SubscribedAt, err = parseTime(at); err != nil {
			return nil, fmt.Errorf("subscriber %s: %w", s.Email, err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return subs, nil
}
