// Package database owns the embedded relational store.
//
// The store is an in-memory SQLite database opened through gorm. It holds
// exactly one connection: the data lives in that connection, and every
// caller is serialized behind it. Nothing survives a restart.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/orderhub/internal/config"
	loggerConfig "github.com/deppfellow/orderhub/internal/logger"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// memoryDSN opens a database private to its connection.
const memoryDSN = "file::memory:"

// DatabasePingTimeout is the number of seconds to wait for a ping.
const DatabasePingTimeout = 5

// Database wraps the gorm handle and a lifecycle logger.
type Database struct {
	DB  *gorm.DB
	log *zerolog.Logger
}

// New opens the in-memory store, applies connection pragmas and pings it.
// The schema is created separately by Migrate.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger:                 loggerConfig.NewGormLogger(*logger, cfg.Observability.Logging.SlowQueryThreshold),
		SkipDefaultTransaction: true,
	}

	db, err := gorm.Open(sqlite.Open(memoryDSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access store connection: %w", err)
	}

	// A second connection would see an empty database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	foreignKeys := "OFF"
	if cfg.Database.EnforceForeignKeys {
		foreignKeys = "ON"
	}
	if err := db.Exec("PRAGMA foreign_keys = " + foreignKeys).Error; err != nil {
		return nil, fmt.Errorf("failed to set foreign_keys pragma: %w", err)
	}

	database := &Database{
		DB:  db,
		log: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	logger.Info().
		Bool("enforce_foreign_keys", cfg.Database.EnforceForeignKeys).
		Msg("opened in-memory store")

	return database, nil
}

// Ping checks the store connection.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the store; its data is gone afterwards.
func (db *Database) Close() error {
	db.log.Info().Msg("closing in-memory store")

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
