package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/models"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// gormConfig sends gorm's warnings and slow queries through the service
// logger. A missing row is an expected lookup result, not an error.
func gormConfig(l *slog.Logger) *gorm.Config {
	return &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.New(slog.NewLogLogger(l.With("component", "gorm").Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

// OpenDB opens, pings and migrates the database for driver "postgres" or
// "sqlite".
func OpenDB(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	cfg := gormConfig(logging.FromContext(ctx))
	switch driver {
	case "postgres":
		sqlDB, oerr := sql.Open("postgres", dsn)
		if oerr != nil {
			return nil, fmt.Errorf("open postgres: %w", oerr)
		}
		configurePool(sqlDB)
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err == nil {
			// every connection to :memory: is a separate database
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	return OpenDB(ctx, cfg.DBDriver, cfg.DatabaseURL)
}
