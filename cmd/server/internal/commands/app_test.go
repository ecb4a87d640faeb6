package commands

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moncomptepro/internal/platform/config"
	dErrors "moncomptepro/pkg/domain-errors"
)

// buildApp registers metrics on the default registry, so it runs once per
// test binary.
func TestBuildAppInMemory(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	logger := slog.New(slog.DiscardHandler)

	a, err := buildApp(ctx, &cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	assert.Nil(t, a.db)
	assert.Nil(t, a.redis)
	assert.Empty(t, a.healthChecks())

	serve := &ServeCmd{SeedUsers: []string{"jean@acme.example", "marie@acme.example"}}
	require.NoError(t, serve.seed(ctx, a))

	user, err := a.users.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "marie@acme.example", user.Email)

	_, err = a.join.ForceJoinOrganization(ctx, 42, user.ID, false)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	assert.Error(t, (&ServeCmd{SeedUsers: []string{"not-an-email"}}).seed(ctx, a))
}

func TestLoadTables(t *testing.T) {
	tables, err := loadTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.FreeEmailProviders)

	_, err = loadTables("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestBuildNotifier(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	cfg := config.Default().Notification
	assert.Equal(t, "*notification.LogNotifier", fmt.Sprintf("%T", buildNotifier(cfg, logger)))

	cfg.Provider = config.NotificationProviderSendGrid
	cfg.SendGridAPIKey = "SG.test"
	assert.Equal(t, "*notification.SendGridNotifier", fmt.Sprintf("%T", buildNotifier(cfg, logger)))
}
