package testsupport

import (
	"path/filepath"
	"testing"

	"ccget/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "captions")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLanguages overrides the preferred caption languages on the test config.
func WithLanguages(codes ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Captions.Languages = codes
	}
}

// WithOutputDir overrides the caption output directory on the test config.
func WithOutputDir(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.OutputDir = path
	}
}
