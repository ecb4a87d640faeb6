package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moncomptepro/internal/platform/postgres"
	"moncomptepro/internal/user/models"
	"moncomptepro/pkg/email"
	"moncomptepro/pkg/platform/sentinel"
	"moncomptepro/pkg/platform/tx"
)

// PostgresUserStore reads and creates users in PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, email, given_name, family_name, created_at`

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO users (email, given_name, family_name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email.Normalize(user.Email), user.GivenName, user.FamilyName,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", postgres.MapError(err))
	}
	return created, nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", postgres.MapError(err))
	}
	return user, nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", postgres.MapError(err))
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.GivenName, &u.FamilyName, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
