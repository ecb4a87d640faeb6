package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moncomptepro/internal/moderation/models"
	"moncomptepro/pkg/platform/sentinel"
)

var moderationRowColumns = []string{
	"id", "user_id", "organization_id", "type", "ticket_id", "created_at", "moderated_at", "moderated_by",
}

func TestPostgresModerationStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)
	ctx := context.Background()
	ticket := "msg-123"

	t.Run("created", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO moderations").
			WithArgs(int64(1), int64(7), "organization_join_block", "msg-123").
			WillReturnRows(sqlmock.NewRows(moderationRowColumns).
				AddRow(3, 1, 7, "organization_join_block", "msg-123", time.Now(), nil, nil))

		m, err := store.Create(ctx, models.Moderation{
			UserID: 1, OrganizationID: 7, Type: models.TypeOrganizationJoinBlock, TicketID: &ticket,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), m.ID)
		assert.True(t, m.IsPending())
		require.NotNil(t, m.TicketID)
		assert.Equal(t, "msg-123", *m.TicketID)
	})

	t.Run("duplicate pending case", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO moderations").
			WithArgs(int64(1), int64(7), "organization_join_block", nil).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "moderations_pending_unique_idx"})

		_, err := store.Create(ctx, models.Moderation{UserID: 1, OrganizationID: 7, Type: models.TypeOrganizationJoinBlock})
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresModerationStore_CreateIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)
	ctx := context.Background()
	flag := models.Moderation{UserID: 1, OrganizationID: 7, Type: models.TypeNonVerifiedDomain}

	t.Run("created", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO moderations (.+) ON CONFLICT \\(user_id, organization_id, type\\) WHERE moderated_at IS NULL DO NOTHING").
			WithArgs(int64(1), int64(7), "non_verified_domain", nil).
			WillReturnRows(sqlmock.NewRows(moderationRowColumns).
				AddRow(4, 1, 7, "non_verified_domain", nil, time.Now(), nil, nil))

		m, err := store.CreateIfAbsent(ctx, flag)
		require.NoError(t, err)
		assert.Equal(t, int64(4), m.ID)
	})

	t.Run("pending case already exists", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO moderations (.+) DO NOTHING").
			WithArgs(int64(1), int64(7), "non_verified_domain", nil).
			WillReturnRows(sqlmock.NewRows(moderationRowColumns))
		mock.ExpectQuery("SELECT (.+) FROM moderations WHERE user_id = \\$1").
			WithArgs(int64(1), int64(7), "non_verified_domain").
			WillReturnRows(sqlmock.NewRows(moderationRowColumns).
				AddRow(2, 1, 7, "non_verified_domain", nil, time.Now(), nil, nil))

		m, err := store.CreateIfAbsent(ctx, flag)
		require.NoError(t, err)
		assert.Equal(t, int64(2), m.ID)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresModerationStore_FindPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM moderations WHERE user_id = \\$1 AND organization_id = \\$2 AND type = \\$3 AND moderated_at IS NULL").
		WithArgs(int64(1), int64(7), "organization_join_block").
		WillReturnError(sql.ErrNoRows)

	_, err = store.FindPending(context.Background(), 1, 7, models.TypeOrganizationJoinBlock)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
