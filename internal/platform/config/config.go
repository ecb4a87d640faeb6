package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full process configuration. Values come from defaults, an
// optional YAML file and environment overrides, in that order.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Auth         AuthConfig         `yaml:"auth"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Registry     RegistryConfig     `yaml:"registry"`
	Directory    DirectoryConfig    `yaml:"directory"`
	Notification NotificationConfig `yaml:"notification"`
	Log          LogConfig          `yaml:"log"`

	// ClassificationFile overrides the embedded organization classification
	// tables and free email provider list.
	ClassificationFile string `yaml:"classification_file"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig configures bearer token validation and the moderator token.
type AuthConfig struct {
	JWTSigningKey string `yaml:"jwt_signing_key"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	AdminToken    string `yaml:"admin_token"`
}

// DatabaseConfig configures PostgreSQL. An empty URL selects in-memory stores.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// RedisConfig configures the registry snapshot cache. An empty URL selects
// the in-memory cache when registry.cache_ttl is set.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// KafkaConfig configures the audit stream. No brokers means audit events are
// only logged.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic"`
	ClientID   string   `yaml:"client_id"`
}

// RegistryConfig configures the INSEE Sirene client.
type RegistryConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Token            string        `yaml:"token"`
	Timeout          time.Duration `yaml:"timeout"`
	// CacheTTL serves repeated lookups from the snapshot cache. Zero, the
	// default, sends every join to the registry.
	CacheTTL         time.Duration `yaml:"cache_ttl"`
	FailureThreshold int           `yaml:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold"`
}

// DirectoryConfig configures the two official contact directories.
type DirectoryConfig struct {
	MunicipalBaseURL string        `yaml:"municipal_base_url"`
	EducationBaseURL string        `yaml:"education_base_url"`
	Timeout          time.Duration `yaml:"timeout"`
}

// NotificationConfig selects how "request queued for review" notices are sent.
type NotificationConfig struct {
	// Provider is "sendgrid" or "log". "log" never contacts a mail provider.
	Provider       string `yaml:"provider"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	SendGridHost   string `yaml:"sendgrid_host"`
	TemplateID     string `yaml:"template_id"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	MaxRetries     uint   `yaml:"max_retries"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

const (
	NotificationProviderSendGrid = "sendgrid"
	NotificationProviderLog      = "log"
)

// Default returns a configuration suitable for local development.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Auth: AuthConfig{
			JWTSigningKey: "dev-secret-key-change-in-production",
			Issuer:        "moncomptepro",
			Audience:      "moncomptepro",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
		Kafka: KafkaConfig{
			AuditTopic: "moncomptepro.organization-join",
			ClientID:   "moncomptepro",
		},
		Registry: RegistryConfig{
			BaseURL:          "https://api.insee.fr/entreprises/sirene/V3.11",
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
			SuccessThreshold: 2,
		},
		Directory: DirectoryConfig{
			MunicipalBaseURL: "https://etablissements-publics.api.gouv.fr/v3",
			EducationBaseURL: "https://data.education.gouv.fr/api/records/1.0/search/",
			Timeout:          3 * time.Second,
		},
		Notification: NotificationConfig{
			Provider:   NotificationProviderLog,
			TemplateID: "unable-to-auto-join-organization",
			FromEmail:  "moncomptepro@beta.gouv.fr",
			FromName:   "L’équipe MonComptePro",
			MaxRetries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from an optional YAML file, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	setString(&c.Server.Addr, "MCP_ADDR")
	setString(&c.Auth.JWTSigningKey, "JWT_SIGNING_KEY")
	setString(&c.Auth.AdminToken, "ADMIN_TOKEN")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.URL, "REDIS_URL")
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Kafka.Brokers = strings.Split(val, ",")
	}
	setString(&c.Kafka.AuditTopic, "KAFKA_AUDIT_TOPIC")
	setString(&c.Registry.BaseURL, "SIRENE_BASE_URL")
	setString(&c.Registry.Token, "SIRENE_TOKEN")
	setDuration(&c.Registry.CacheTTL, "SIRENE_CACHE_TTL")
	setString(&c.Directory.MunicipalBaseURL, "ANNUAIRE_SERVICE_PUBLIC_BASE_URL")
	setString(&c.Directory.EducationBaseURL, "ANNUAIRE_EDUCATION_BASE_URL")
	setString(&c.Notification.SendGridAPIKey, "SENDGRID_API_KEY")
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notification.Provider = NotificationProviderSendGrid
	}
	if b, err := strconv.ParseBool(os.Getenv("DO_NOT_SEND_MAIL")); err == nil && b {
		c.Notification.Provider = NotificationProviderLog
	}
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.ClassificationFile, "CLASSIFICATION_FILE")
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setDuration(dst *time.Duration, key string) {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		*dst = d
	}
}

// Validate checks the configuration for missing or contradictory values.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("auth.jwt_signing_key is required"))
	}
	if c.Registry.BaseURL == "" {
		errs = append(errs, errors.New("registry.base_url is required"))
	}
	if c.Registry.Timeout <= 0 {
		errs = append(errs, errors.New("registry.timeout must be positive"))
	}
	if c.Registry.CacheTTL < 0 {
		errs = append(errs, errors.New("registry.cache_ttl must not be negative"))
	}
	if c.Directory.Timeout <= 0 {
		errs = append(errs, errors.New("directory.timeout must be positive"))
	}
	switch c.Notification.Provider {
	case NotificationProviderLog:
	case NotificationProviderSendGrid:
		if c.Notification.SendGridAPIKey == "" {
			errs = append(errs, errors.New("notification.sendgrid_api_key is required for the sendgrid provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("notification.provider %q is not supported", c.Notification.Provider))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		errs = append(errs, errors.New("kafka.audit_topic is required when brokers are set"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not supported", c.Log.Format))
	}
	return errors.Join(errs...)
}
