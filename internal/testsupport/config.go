package testsupport

import (
	"path/filepath"
	"testing"

	"tvkeep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.TVDB.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTVDBKey sets the TVDB API key on the test config.
func WithTVDBKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TVDB.APIKey = key
	}
}
