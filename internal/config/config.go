package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KANAFLASH_"

// Config holds all user-tunable settings.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `toml:"db_path" env:"DB"`

	// LogFile is where logs are written; "-" disables logging.
	LogFile  string `toml:"log_file" env:"LOG_FILE"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// SnapshotTTL is how long saved selection, mode and theme survive.
	SnapshotTTL time.Duration `toml:"snapshot_ttl" env:"SNAPSHOT_TTL" validate:"gt=0"`

	// Shuffle controls whether new study sessions are shuffled.
	Shuffle bool `toml:"shuffle" env:"SHUFFLE"`

	DefaultMode string `toml:"default_mode" env:"DEFAULT_MODE" validate:"oneof=character-to-sound sound-to-character"`

	// HistoryLimit caps the number of stored study sessions.
	HistoryLimit int `toml:"history_limit" env:"HISTORY_LIMIT" validate:"min=1,max=1000"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogFile:      DefaultLogPath(),
		LogLevel:     "info",
		SnapshotTTL:  24 * time.Hour,
		Shuffle:      true,
		DefaultMode:  "character-to-sound",
		HistoryLimit: 100,
	}
}

var validate = validator.New()

// Load builds the configuration from defaults, the TOML file at path and
// KANAFLASH_* environment variables, in increasing priority. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode config: unknown key %q", undecoded[0].String())
	}
	return nil
}
