package postgres

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// RunMigrations applies pending schema migrations from cfg.MigrationsPath.
// A database already at the latest version is not an error.
func RunMigrations(cfg Config, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	path := cfg.MigrationsPath
	if path == "" {
		path = "migrations"
	}

	m, err := migrate.New("file://"+path, cfg.MigrateDSN())
	if err != nil {
		return apperrors.New(apperrors.ErrCodeDatabaseError, "migration setup failed").
			WithDetail(path).WithCause(err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("migration cleanup reported errors",
				logging.Any("source_err", srcErr),
				logging.Any("db_err", dbErr),
			)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema already up to date")
			return nil
		}
		return apperrors.New(apperrors.ErrCodeDatabaseError, "migration failed").WithCause(err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		logger.Info("database migrated",
			logging.Any("version", version),
			logging.Bool("dirty", dirty),
		)
	}
	return nil
}
