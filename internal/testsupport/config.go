package testsupport

import (
	"path/filepath"
	"testing"

	"dvdenrich/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config pointing at a SQLite catalogue file inside a
// per-test temp directory. The file itself is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Database.Driver = config.DriverSQLite
	cfgVal.Database.Name = filepath.Join(base, "dvds.db")
	cfgVal.Wikipedia.Endpoint = "http://127.0.0.1:0/w/api.php"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithEndpoint points the Wikipedia client at endpoint, typically an
// httptest server URL.
func WithEndpoint(endpoint string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Wikipedia.Endpoint = endpoint
	}
}

// WithTable overrides the catalogue table name.
func WithTable(table string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Database.Table = table
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Database.Name)
}
