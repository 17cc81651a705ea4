package config

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}

	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.Mail.Enabled() {
		if _, err := mail.ParseAddress(c.Mail.From); err != nil {
			return fmt.Errorf("mail.from %q: %w", c.Mail.From, err)
		}
		switch strings.ToLower(c.Mail.TLSPolicy) {
		case "mandatory", "opportunistic", "none":
		default:
			return fmt.Errorf("mail.tls_policy must be mandatory, opportunistic or none (got %q)", c.Mail.TLSPolicy)
		}
	}

	if c.Notify.Concurrency < 1 {
		return fmt.Errorf("notify.concurrency must be >= 1 (got %d)", c.Notify.Concurrency)
	}

	loc, err := time.LoadLocation(c.Feed.Timezone)
	if err != nil {
		return fmt.Errorf("feed.timezone: %w", err)
	}
	c.Feed.Location = loc

	return nil
}

func (d *DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(d.DSN) == "" {
			return fmt.Errorf("dsn is required for driver %q", d.Driver)
		}
		return nil
	default:
		return fmt.Errorf("driver must be one of memory, postgres, sqlite (got %q)", d.Driver)
	}
}
