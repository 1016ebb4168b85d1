// Package config loads the ambient (non-detection) configuration: HTTP server and
// logging settings. Detection-core constants (cycle length, smurfing window/threshold,
// shell degree range, overlap threshold) are deliberately not loaded here — they are
// compile-time constants, not dynamically configured, and live as package-level
// constants in internal/detect, internal/merge, and internal/score.
package config

import (
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix ardanlabs/conf uses to derive environment variable names
// (e.g. FORENSICS_HTTP_PORT).
const EnvPrefix = "FORENSICS"

// Config aggregates application configuration values.
type Config struct {
	HTTP struct {
		Host            string        `conf:"default:0.0.0.0"`
		Port            int           `conf:"default:8080"`
		ReadTimeout     time.Duration `conf:"default:10s"`
		WriteTimeout    time.Duration `conf:"default:15s"`
		ShutdownTimeout time.Duration `conf:"default:10s"`
	}
	Logging struct {
		Level  string `conf:"default:info"`
		Format string `conf:"default:text"`
	}
}

// Load parses Config from CLI args and environment variables prefixed with EnvPrefix.
// args is normally os.Args[1:].
func Load(args []string) (Config, error) {
	var cfg Config
	if err := conf.Parse(args, EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	return cfg, nil
}

// Usage renders the help text ardanlabs/conf generates from Config's struct tags.
func Usage(cfg *Config) (string, error) {
	usage, err := conf.Usage(EnvPrefix, cfg)
	if err != nil {
		return "", errors.Wrap(err, "generating config usage")
	}
	return usage, nil
}
