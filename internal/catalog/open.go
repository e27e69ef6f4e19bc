package catalog

import (
	"context"
	"fmt"

	"dvdenrich/internal/config"
	"dvdenrich/internal/services"
)

// Open connects to the catalogue described by cfg.Database. Any failure to
// reach the database is reported as services.ErrConnection.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "open", "config is required", nil)
	}
	db := cfg.Database
	switch db.Driver {
	case config.DriverMySQL:
		return openMySQL(ctx, db)
	case config.DriverSQLite:
		return openSQLite(ctx, db)
	case config.DriverPostgres:
		return openPostgres(ctx, db)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "open", fmt.Sprintf("unsupported driver %q", db.Driver), nil)
	}
}

func connectionError(operation string, err error) error {
	return services.Wrap(services.ErrConnection, "catalog", operation, "", err)
}
