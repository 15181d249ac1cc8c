// Package sessions provides PostgreSQL-backed persistence for session
// records. Every mutating statement is scoped by (id, user_id) in a single
// predicate, so "exists under another owner" and "does not exist" are
// observably identical and concurrent edits cannot interleave partially.
package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkoloskov/wellspring/internal/dbx"
	"github.com/dkoloskov/wellspring/internal/server/models"
	"github.com/dkoloskov/wellspring/internal/shared"
)

const sessionColumns = `id, user_id, title, description, tags, json_file_url, status, duration, level, created_at, updated_at`

// PostgresRepository implements session storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	tags, err := tagsValue(session.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.Title, session.Description, tags,
		session.JSONFileURL, session.Status, session.Duration, session.Level,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdateOwned applies patch to the record matching (id, user_id) and returns
// the resulting row. Absent optional fields keep their stored values via
// COALESCE, so the whole update is one atomic statement.
func (r *PostgresRepository) UpdateOwned(ctx context.Context, userID, id string, patch Patch) (*models.Session, error) {
	query := `
		UPDATE sessions SET
			title = $1,
			tags = COALESCE($2::jsonb, tags),
			json_file_url = COALESCE($3, json_file_url),
			description = COALESCE($4, description),
			duration = COALESCE($5, duration),
			level = COALESCE($6, level),
			status = COALESCE($7, status),
			updated_at = $8
		WHERE id = $9 AND user_id = $10
		RETURNING ` + sessionColumns

	var tags any
	if patch.Tags != nil {
		value, err := tagsValue(patch.Tags)
		if err != nil {
			return nil, err
		}
		tags = value
	}

	row := r.db.QueryRowContext(ctx, query,
		patch.Title, tags, stringArg(patch.JSONFileURL), stringArg(patch.Description),
		intArg(patch.Duration), levelArg(patch.Level), statusArg(patch.Status),
		patch.UpdatedAt, id, userID)

	return scanSession(row)
}

func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 AND user_id = $2`
	return scanSession(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select sessions: %w", err)
	}
	defer rows.Close()

	result := []*models.Session{}
	for rows.Next() {
		item, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListPublished(ctx context.Context) ([]*models.PublishedSession, error) {
	query := `
		SELECT s.id, s.user_id, s.title, s.description, s.tags, s.json_file_url,
		       s.status, s.duration, s.level, s.created_at, s.updated_at, u.email
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.status = 'published'
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select sessions: %w", err)
	}
	defer rows.Close()

	result := []*models.PublishedSession{}
	for rows.Next() {
		var item models.PublishedSession
		var tags []byte
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &tags,
			&item.JSONFileURL, &item.Status, &item.Duration, &item.Level,
			&item.CreatedAt, &item.UpdatedAt, &item.OwnerEmail,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("tags decode error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) PublishOwned(ctx context.Context, userID, id string, updatedAt time.Time) (*models.Session, error) {
	query := `
		UPDATE sessions SET status = 'published', updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRowContext(ctx, query, updatedAt, id, userID))
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, userID, id string) error {
	query := `DELETE FROM sessions WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}
	return nil
}

// --- scanning helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInto(s rowScanner, item *models.Session) error {
	var tags []byte
	if err := s.Scan(
		&item.ID, &item.UserID, &item.Title, &item.Description, &tags,
		&item.JSONFileURL, &item.Status, &item.Duration, &item.Level,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return fmt.Errorf("tags decode error: %w", err)
	}
	return nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var item models.Session
	if err := scanInto(row, &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func scanSessionRow(rows *sql.Rows) (*models.Session, error) {
	var item models.Session
	if err := scanInto(rows, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func tagsValue(tags models.TagList) ([]byte, error) {
	if tags == nil {
		tags = models.TagList{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("tags encode error: %w", err)
	}
	return b, nil
}

// nil-preserving arg converters: database/sql maps a nil any to SQL NULL,
// which is what the COALESCE fallbacks expect.

func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func intArg(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func levelArg(l *models.Level) any {
	if l == nil {
		return nil
	}
	return string(*l)
}

func statusArg(s *models.Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
