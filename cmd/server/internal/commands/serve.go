package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	httpapi "moncomptepro/internal/http"
	jwttoken "moncomptepro/internal/jwt_token"
	"moncomptepro/internal/organization/join/handler"
	"moncomptepro/internal/platform/httpserver"
	"moncomptepro/internal/platform/metrics"
	usermodels "moncomptepro/internal/user/models"
	"moncomptepro/pkg/email"
)

type ServeCmd struct {
	Addr      string   `help:"Listen address, overrides server.addr." env:"MCP_ADDR"`
	SeedUsers []string `help:"Emails of users to create at startup when running on in-memory stores." name:"seed-user" sep:","`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := c.seed(ctx, a); err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Config{
		Join:         handler.New(a.join, logger),
		JWTValidator: jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)),
		AdminToken:   cfg.Auth.AdminToken,
		Metrics:      metrics.New(),
		HealthChecks: a.healthChecks(),
		Logger:       logger,
	})
	if cfg.Auth.AdminToken == "" {
		logger.WarnContext(ctx, "no admin token configured, moderator routes are disabled")
	}

	logger.InfoContext(ctx, "starting moncomptepro", "version", globals.Version)
	return httpserver.Run(ctx, httpserver.New(cfg.Server, router), cfg.Server.ShutdownTimeout, logger)
}

func (c *ServeCmd) seed(ctx context.Context, a *app) error {
	if len(c.SeedUsers) == 0 {
		return nil
	}
	if a.db != nil {
		return fmt.Errorf("--seed-user is only supported with in-memory stores")
	}
	for _, address := range c.SeedUsers {
		if !email.IsValid(address) {
			return fmt.Errorf("invalid seed user email %q", address)
		}
		user, err := a.users.Create(ctx, &usermodels.User{Email: address})
		if err != nil {
			return fmt.Errorf("seed user %q: %w", address, err)
		}
		a.logger.InfoContext(ctx, "seeded user", "user_id", user.ID, "email", user.Email)
	}
	return nil
}
