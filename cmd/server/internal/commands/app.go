package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"moncomptepro/internal/evidence/directory"
	"moncomptepro/internal/evidence/registry"
	registrymetrics "moncomptepro/internal/evidence/registry/metrics"
	"moncomptepro/internal/evidence/registry/providers/sirene"
	registrystore "moncomptepro/internal/evidence/registry/store"
	httpapi "moncomptepro/internal/http"
	moderationstore "moncomptepro/internal/moderation/store"
	"moncomptepro/internal/notification"
	"moncomptepro/internal/organization/classifier"
	"moncomptepro/internal/organization/join"
	joinmetrics "moncomptepro/internal/organization/join/metrics"
	orgstore "moncomptepro/internal/organization/store"
	"moncomptepro/internal/platform/config"
	"moncomptepro/internal/platform/postgres"
	"moncomptepro/internal/platform/redis"
	usermodels "moncomptepro/internal/user/models"
	userstore "moncomptepro/internal/user/store"
	"moncomptepro/pkg/platform/audit"
	"moncomptepro/pkg/platform/audit/publisher"
	kafkastore "moncomptepro/pkg/platform/audit/store/kafka"
	logstore "moncomptepro/pkg/platform/audit/store/logger"
	"moncomptepro/pkg/platform/circuit"
	"moncomptepro/pkg/platform/tx"
)

const auditBufferSize = 1024

// userCreator is implemented by both user stores.
type userCreator interface {
	join.UserStore
	Create(ctx context.Context, user *usermodels.User) (*usermodels.User, error)
}

// app holds the wired join service and everything that must be released on
// shutdown, in reverse order of acquisition.
type app struct {
	join    *join.Service
	users   userCreator
	db      *sql.DB
	redis   *redis.Client
	closers []func() error
	logger  *slog.Logger
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	var (
		orgs        join.OrganizationStore
		moderations join.ModerationStore
		runner      join.Transactor = tx.NoopRunner{}
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, logger); err != nil {
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}
		a.users = userstore.NewPostgres(db)
		orgs = orgstore.NewPostgres(db)
		moderations = moderationstore.NewPostgres(db)
		runner = tx.NewRunner(db)
	} else {
		logger.WarnContext(ctx, "no database configured, using in-memory stores")
		users := userstore.NewInMemory()
		a.users = users
		orgs = orgstore.NewInMemory(users)
		moderations = moderationstore.NewInMemory()
	}

	gateway, err := a.buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tables, err := loadTables(cfg.ClassificationFile)
	if err != nil {
		return nil, err
	}
	cls, err := classifier.New(tables)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	auditStore, err := a.buildAuditStore(cfg)
	if err != nil {
		return nil, err
	}
	pub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(logger),
	)
	a.closers = append(a.closers, func() error {
		pub.Close()
		if dropped := pub.Dropped(); dropped > 0 {
			logger.Warn("audit events dropped", "count", dropped)
		}
		return nil
	})

	svc, err := join.New(gateway, orgs, a.users, moderations, buildNotifier(cfg.Notification, logger), cls,
		join.WithMunicipalDirectory(directory.NewMunicipalClient(cfg.Directory.MunicipalBaseURL, cfg.Directory.Timeout)),
		join.WithSchoolDirectory(directory.NewSchoolClient(cfg.Directory.EducationBaseURL, cfg.Directory.Timeout)),
		join.WithDirectoryTimeout(cfg.Directory.Timeout),
		join.WithTransactor(runner),
		join.WithAuditPublisher(pub),
		join.WithMetrics(joinmetrics.New()),
		join.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build join service: %w", err)
	}
	a.join = svc
	return a, nil
}

func (a *app) buildRegistry(ctx context.Context, cfg *config.Config) (*registry.Gateway, error) {
	opts := []registry.Option{}
	if ttl := cfg.Registry.CacheTTL; ttl > 0 {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		var cache registry.Cache = registrystore.NewInMemoryCache(ttl)
		if client != nil {
			a.redis = client
			a.closers = append(a.closers, client.Close)
			cache = registrystore.NewRedisCache(client.Client, ttl)
		}
		opts = append(opts, registry.WithCache(cache, ttl))
	}

	provider := sirene.New(cfg.Registry.BaseURL, cfg.Registry.Token, cfg.Registry.Timeout)
	return registry.NewGateway(provider, append(opts,
		registry.WithTimeout(cfg.Registry.Timeout),
		registry.WithBreaker(circuit.New("sirene",
			circuit.WithFailureThreshold(cfg.Registry.FailureThreshold),
			circuit.WithSuccessThreshold(cfg.Registry.SuccessThreshold),
		)),
		registry.WithMetrics(registrymetrics.New()),
		registry.WithLogger(a.logger),
	)...), nil
}

func (a *app) buildAuditStore(cfg *config.Config) (audit.Store, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return logstore.New(a.logger), nil
	}
	client, err := kafkastore.NewClient(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	a.closers = append(a.closers, func() error {
		client.Close()
		return nil
	})
	return kafkastore.New(client, cfg.Kafka.AuditTopic), nil
}

func buildNotifier(cfg config.NotificationConfig, logger *slog.Logger) join.Notifier {
	if cfg.Provider != config.NotificationProviderSendGrid {
		return notification.NewLogNotifier(logger)
	}
	opts := []notification.SendGridOption{
		notification.WithMaxRetries(cfg.MaxRetries),
		notification.WithLogger(logger),
	}
	if cfg.SendGridHost != "" {
		opts = append(opts, notification.WithHost(cfg.SendGridHost))
	}
	return notification.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.TemplateID, cfg.FromEmail, cfg.FromName, opts...)
}

func loadTables(path string) (classifier.Tables, error) {
	if path == "" {
		return classifier.DefaultTables()
	}
	tables, err := classifier.LoadTables(path)
	if err != nil {
		return classifier.Tables{}, fmt.Errorf("load classification tables: %w", err)
	}
	return tables, nil
}

func (a *app) healthChecks() map[string]httpapi.HealthCheck {
	checks := map[string]httpapi.HealthCheck{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	return checks
}
