package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// DB is a PostgreSQL handle backed by gorm.
type DB struct {
	*gorm.DB
	cfg Config
	log *logger.Logger
}

// New validates cfg, opens the pool and waits for the first ping.
func New(cfg *Config, log *logger.Logger) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  newQueryLogger(log, cfg.LogLevel, cfg.SlowThreshold),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db := &DB{DB: gdb, cfg: *cfg, log: log.Named("database")}
	if err := db.configurePool(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.log.Info("connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.DBName),
	)
	return db, nil
}

func (db *DB) configurePool() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(db.cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(db.cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(db.cfg.ConnMaxLifetime)
	return nil
}

// Ping round-trips to the server.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	db.log.Info("closing")
	return sqlDB.Close()
}

// Migrate creates or updates tables for models. No-op unless AutoMigrate is set.
func (db *DB) Migrate(models ...any) error {
	if !db.cfg.AutoMigrate {
		db.log.Debug("migration skipped")
		return nil
	}
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InTx runs fn inside a single transaction. A returned error rolls back.
func (db *DB) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := db.DB.WithContext(ctx).Transaction(fn)
	if err != nil {
		db.log.WithContext(ctx).Warn("transaction rolled back", zap.Error(err))
	}
	return err
}

// IsNotFound reports whether err is gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
