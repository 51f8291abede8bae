package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// CatalogStats is the size of the catalog found at startup.
type CatalogStats struct {
	Categories int64
	Products   int64
}

// New opens the storefront database. On start it pings the primary, migrates
// the schema when configured, reports the catalog size and starts watching
// the pool for connection waits.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storefront database")
	}
	db = db.Session(&gorm.Session{
		// Transactions are opened by the unit of work only.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get storefront sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping storefront database")
			}

			if params.Config.Database.AutoMigrate {
				if err := Migrate(db.WithContext(ctx)); err != nil {
					return err
				}
				params.Logger.Info("Storefront schema migrated")
			}

			if _, err := CheckCatalog(ctx, db, params.Logger); err != nil {
				return err
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// CheckCatalog counts the categories and products the storefront will serve.
// An empty product table is logged as a warning, not returned as an error.
func CheckCatalog(ctx context.Context, db *gorm.DB, logger *slog.Logger) (CatalogStats, error) {
	var stats CatalogStats

	if err := db.WithContext(ctx).Model(&entity.ProductCategory{}).Count(&stats.Categories).Error; err != nil {
		return stats, translateError(err, "failed to count product categories")
	}
	if err := db.WithContext(ctx).Model(&entity.Product{}).Count(&stats.Products).Error; err != nil {
		return stats, translateError(err, "failed to count products")
	}

	attrs := []slog.Attr{
		slog.Int64("categories", stats.Categories),
		slog.Int64("products", stats.Products),
	}
	if stats.Products == 0 {
		logger.LogAttrs(ctx, slog.LevelWarn, "Storefront catalog is empty", attrs...)
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "Storefront catalog ready", attrs...)
	}

	return stats, nil
}

// poolWait compares two pool samples. ok is false when no query had to wait
// for a connection in between.
func poolWait(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waitDelta := cur.WaitCount - prev.WaitCount
	if waitDelta <= 0 {
		return slog.LevelDebug, nil, false
	}
	waitDurationDelta := cur.WaitDuration - prev.WaitDuration

	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waitDelta),
		slog.Duration("waitDurationDelta", waitDurationDelta),
		slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}
	if waitDurationDelta >= dbPoolWarnDurationThreshold {
		return slog.LevelWarn, attrs, true
	}

	return slog.LevelDebug, attrs, true
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, ok := poolWait(prev, cur); ok {
				logger.LogAttrs(ctx, level, "Storefront pool wait", attrs...)
			}
			prev = cur
		}
	}
}
