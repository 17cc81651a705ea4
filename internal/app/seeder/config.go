package seeder

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings.
type Config struct {
	FixturePath string `yaml:"fixture_path" env:"SEEDER_FIXTURE_PATH" env-default:"./fixtures/seed.yaml"`
	DryRun      bool   `yaml:"dry_run"      env:"SEEDER_DRY_RUN"`
	// SkipExisting skips fixture submissions whose title is already in the feed.
	SkipExisting bool `yaml:"skip_existing" env:"SEEDER_SKIP_EXISTING" env-default:"true"`
}

// LoadConfig reads seeder settings. path may be empty, in which case
// SEEDER_CONFIG is consulted; with neither, settings come from ENV and
// defaults only. Priority: ENV > YAML > defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("SEEDER_CONFIG")
	}

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("seeder config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
	}

	if cfg.FixturePath == "" {
		return nil, errors.New("seeder config: fixture_path is required")
	}
	return &cfg, nil
}
