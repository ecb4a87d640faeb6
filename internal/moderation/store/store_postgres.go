package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moncomptepro/internal/moderation/models"
	"moncomptepro/internal/platform/postgres"
	"moncomptepro/pkg/platform/sentinel"
	"moncomptepro/pkg/platform/tx"
)

// PostgresModerationStore persists review cases. The partial unique index on
// pending cases rejects concurrent duplicates.
type PostgresModerationStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresModerationStore {
	return &PostgresModerationStore{db: db}
}

const moderationColumns = `id, user_id, organization_id, type, ticket_id, created_at, moderated_at, moderated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModeration(row rowScanner) (*models.Moderation, error) {
	var (
		m           models.Moderation
		kind        string
		ticketID    sql.NullString
		moderatedAt sql.NullTime
		moderatedBy sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.OrganizationID, &kind, &ticketID, &m.CreatedAt, &moderatedAt, &moderatedBy); err != nil {
		return nil, err
	}
	m.Type = models.Type(kind)
	if ticketID.Valid {
		m.TicketID = &ticketID.String
	}
	if moderatedAt.Valid {
		m.ModeratedAt = &moderatedAt.Time
	}
	if moderatedBy.Valid {
		m.ModeratedBy = &moderatedBy.String
	}
	return &m, nil
}

func (s *PostgresModerationStore) Create(ctx context.Context, m models.Moderation) (*models.Moderation, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO moderations (user_id, organization_id, type, ticket_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+moderationColumns,
		m.UserID, m.OrganizationID, string(m.Type), m.TicketID,
	)
	created, err := scanModeration(row)
	if err != nil {
		return nil, fmt.Errorf("create moderation: %w", postgres.MapError(err))
	}
	return created, nil
}

// CreateIfAbsent inserts with ON CONFLICT DO NOTHING so a duplicate pending
// case leaves the surrounding transaction usable.
func (s *PostgresModerationStore) CreateIfAbsent(ctx context.Context, m models.Moderation) (*models.Moderation, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO moderations (user_id, organization_id, type, ticket_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id, type) WHERE moderated_at IS NULL DO NOTHING
		RETURNING `+moderationColumns,
		m.UserID, m.OrganizationID, string(m.Type), m.TicketID,
	)
	created, err := scanModeration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return s.FindPending(ctx, m.UserID, m.OrganizationID, m.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("create moderation: %w", postgres.MapError(err))
	}
	return created, nil
}

func (s *PostgresModerationStore) FindPending(ctx context.Context, userID, organizationID int64, kind models.Type) (*models.Moderation, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT `+moderationColumns+`
		FROM moderations
		WHERE user_id = $1 AND organization_id = $2 AND type = $3 AND moderated_at IS NULL`,
		userID, organizationID, string(kind),
	)
	m, err := scanModeration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find pending moderation: %w", postgres.MapError(err))
	}
	return m, nil
}

func (s *PostgresModerationStore) ListByOrganization(ctx context.Context, organizationID int64) ([]*models.Moderation, error) {
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, `
		SELECT `+moderationColumns+`
		FROM moderations
		WHERE organization_id = $1
		ORDER BY id`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list moderations: %w", postgres.MapError(err))
	}
	defer rows.Close()

	var out []*models.Moderation
	for rows.Next() {
		m, err := scanModeration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan moderation: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresModerationStore) MarkModerated(ctx context.Context, id int64, by string, at time.Time) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `
		UPDATE moderations SET moderated_at = $2, moderated_by = $3
		WHERE id = $1 AND moderated_at IS NULL`, id, at, by)
	if err != nil {
		return fmt.Errorf("mark moderated: %w", postgres.MapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark moderated: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
