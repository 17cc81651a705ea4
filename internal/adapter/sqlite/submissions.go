package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

var submissionColumns = []string{
	"id", "title", "description", "location", "category",
	"occurs_at", "tags", "vote_seed", "created_at",
}

// SubmissionRepo stores submissions in one table with tags as a JSON array.
type SubmissionRepo struct {
	db *sql.DB
}

// NewSubmissionRepo creates a submission repository over db.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Insert writes one submission row.
func (r *SubmissionRepo) Insert(ctx context.Context, sub *domain.Submission) error {
	tags := sub.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	var occurs any
	if sub.OccursAt != nil {
		occurs = formatTime(*sub.OccursAt)
	}

	query, args, err := builder.Insert("submissions").
		Columns(submissionColumns...).
		Values(
			sub.ID, sub.Title, sub.Description, sub.Location, string(sub.Category),
			occurs, string(encoded), sub.VoteSeed, formatTime(sub.CreatedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert submission: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "submission", sub.ID)
	}
	return nil
}

// FetchAll returns every live submission ordered by id.
func (r *SubmissionRepo) FetchAll(ctx context.Context) ([]domain.Submission, error) {
	query, args, err := builder.Select(submissionColumns...).
		From("submissions").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select submissions: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Submission, 0)
	for rows.Next() {
		var (
			s              domain.Submission
			category, tags string
			occurs         sql.NullString
			createdAt      string
		)
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Location, &category,
			&occurs, &tags, &s.VoteSeed, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}

		s.Category = domain.Category(category)
		if occurs.Valid {
			at, err := parseTime(occurs.String)
			if err != nil {
				return nil, fmt.Errorf("submission %d: %w", s.ID, err)
			}
			s.OccursAt = &at
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("submission %d: %w", s.ID, err)
		}
		// Stored rows may predate normalization, so decode through Tags.
		var decoded domain.Tags
		if err := json.Unmarshal([]byte(tags), &decoded); err != nil {
			return nil, fmt.Errorf("submission %d: decode tags: %w", s.ID, err)
		}
		s.Tags = []string(decoded)
		if s.Tags == nil {
			s.Tags = []string{}
		}

		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

// Delete marks a live submission as removed.
func (r *SubmissionRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := builder.Update("submissions").
		Set("deleted_at", sq.Expr("strftime('%Y-%m-%dT%H:%M:%fZ', 'now')")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete submission: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "submission", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete submission %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("submission %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// LastID returns the largest id ever stored, removed rows included, or 0.
func (r *SubmissionRepo) LastID(ctx context.Context) (int64, error) {
	var last int64
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM submissions").Scan(&last); err != nil {
		return 0, fmt.Errorf("last submission id: %w", err)
	}
	return last, nil
}
