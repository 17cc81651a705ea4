// Package submission persists feed submissions in PostgreSQL. Tags live in
// the ordered submission_tags child table; removal is a soft delete so ids
// stay retired across restarts.
package submission

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/campusconnect-backend/internal/adapter/postgres"
	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var submissionColumns = []string{
	"id", "title", "description", "location", "category",
	"occurs_at", "vote_seed", "created_at",
}

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new submission repository.
func New(pool *pgxpool.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// Insert writes the submission row and its tags in one transaction.
func (r *Repo) Insert(ctx context.Context, sub *domain.Submission) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		query, args, err := psql.Insert("submissions").
			Columns(submissionColumns...).
			Values(
				sub.ID, sub.Title, sub.Description, sub.Location, string(sub.Category),
				sub.OccursAt, sub.VoteSeed, sub.CreatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert submission: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "submission", sub.ID)
		}

		if len(sub.Tags) == 0 {
			return nil
		}

		tags := psql.Insert("submission_tags").Columns("submission_id", "position", "tag")
		for i, tag := range sub.Tags {
			tags = tags.Values(sub.ID, i, tag)
		}
		query, args, err = tags.ToSql()
		if err != nil {
			return fmt.Errorf("build insert tags: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "submission tags", sub.ID)
		}
		return nil
	})
}

// FetchAll returns every live submission ordered by id.
func (r *Repo) FetchAll(ctx context.Context) ([]domain.Submission, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select submissions: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Submission, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			s        domain.Submission
			category string
			occurs   *time.Time
		)
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Location, &category,
			&occurs, &s.VoteSeed, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.Category = domain.Category(category)
		if occurs != nil {
			t := occurs.UTC()
			s.OccursAt = &t
		}
		s.CreatedAt = s.CreatedAt.UTC()
		s.Tags = []string{}
		index[s.ID] = len(subs)
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	if len(subs) == 0 {
		return subs, nil
	}
	if err := r.attachTags(ctx, q, subs, index); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *Repo) attachTags(ctx context.Context, q postgres.Querier, subs []domain.Submission, index map[int64]int) error {
	query, args, err := psql.Select("t.submission_id", "t.tag").
		From("submission_tags t").
		Join("submissions s ON s.id = t.submission_id").
		Where(sq.Eq{"s.deleted_at": nil}).
		OrderBy("t.submission_id", "t.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select tags: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fetch tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int64
			tag string
		)
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if i, ok := index[id]; ok {
			subs[i].Tags = append(subs[i].Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tags: %w", err)
	}
	return nil
}

// Delete marks a live submission as removed.
// Returns domain.ErrNotFound when no live row has the id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Update("submissions").
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete submission: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// LastID returns the largest id ever stored, removed rows included, or 0.
func (r *Repo) LastID(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COALESCE(MAX(id), 0)").From("submissions").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build last id: %w", err)
	}

	var last int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&last); err != nil {
		return 0, fmt.Errorf("last submission id: %w", err)
	}
	return last, nil
}
