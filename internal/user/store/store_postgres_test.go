package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moncomptepro/internal/user/models"
	"moncomptepro/pkg/platform/sentinel"
)

func TestPostgresUserStore_CreateNormalizesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jean.dupont@mairie.fr", "Jean", "Dupont").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "given_name", "family_name", "created_at"}).
			AddRow(5, "jean.dupont@mairie.fr", "Jean", "Dupont", time.Now()))

	created, err := NewPostgres(db).Create(context.Background(), &models.User{
		Email: " Jean.Dupont@Mairie.fr", GivenName: "Jean", FamilyName: "Dupont",
	})
	require.NoError(t, err)
	assert.Equal(t, "jean.dupont@mairie.fr", created.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "given_name", "family_name", "created_at"}).
				AddRow(3, "jean@mairie.fr", "Jean", "Dupont", now))

		user, err := store.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "jean@mairie.fr", user.Email)
		assert.Equal(t, "Dupont", user.FamilyName)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(4)).
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByID(ctx, 4)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
