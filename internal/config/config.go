package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Mail     MailConfig     `yaml:"mail"`
	Notify   NotifyConfig   `yaml:"notify"`
	Feed     FeedConfig     `yaml:"feed"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Supported persistence drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects and configures the persistence backend.
// With the memory driver nothing survives a restart.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"memory"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// SessionConfig holds anonymous viewer session settings.
type SessionConfig struct {
	Secret     string        `yaml:"secret"      env:"SESSION_SECRET"      env-required:"true"`
	Issuer     string        `yaml:"issuer"      env:"SESSION_ISSUER"      env-default:"campusconnect"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"cc_session"`
	TTL        time.Duration `yaml:"ttl"         env:"SESSION_TTL"         env-default:"8760h"`
	Secure     bool          `yaml:"secure"      env:"SESSION_SECURE"      env-default:"false"`
}

// MailConfig holds outbound SMTP settings. An empty SMTPHost switches the
// application to a log-only sender.
type MailConfig struct {
	SMTPHost  string        `yaml:"smtp_host"  env:"MAIL_SMTP_HOST"`
	SMTPPort  int           `yaml:"smtp_port"  env:"MAIL_SMTP_PORT"  env-default:"587"`
	Username  string        `yaml:"username"   env:"MAIL_USERNAME"`
	Password  string        `yaml:"password"   env:"MAIL_PASSWORD"`
	From      string        `yaml:"from"       env:"MAIL_FROM"       env-default:"CampusConnect <no-reply@campusconnect.local>"`
	TLSPolicy string        `yaml:"tls_policy" env:"MAIL_TLS_POLICY" env-default:"mandatory"`
	Timeout   time.Duration `yaml:"timeout"    env:"MAIL_TIMEOUT"    env-default:"15s"`
}

// Enabled reports whether a real SMTP transport is configured.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// NotifyConfig holds broadcast settings.
type NotifyConfig struct {
	Concurrency   int    `yaml:"concurrency"    env:"NOTIFY_CONCURRENCY"    env-default:"8"`
	SubjectPrefix string `yaml:"subject_prefix" env:"NOTIFY_SUBJECT_PREFIX" env-default:"CampusConnect Announcement"`
	SiteURL       string `yaml:"site_url"       env:"NOTIFY_SITE_URL"       env-default:"http://localhost:8080"`
}

// FeedConfig holds submission feed settings.
type FeedConfig struct {
	Timezone string `yaml:"timezone" env:"FEED_TIMEZONE" env-default:"UTC"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
