// File: cmd/devgateway/providers.go
package main

import (
	"log"

	"bluestock_client/internal/auth"
	"bluestock_client/internal/config"
	"bluestock_client/internal/platform/database"
	"bluestock_client/internal/platform/logger"
	"bluestock_client/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideUserRepository migrates the schema and returns the repository.
// The dev gateway auto-migrates its one table at startup.
func provideUserRepository(db *gorm.DB) (user.Repository, error) {
	if err := user.Migrate(db); err != nil {
		return nil, err
	}
	return user.NewGORMRepository(db), nil
}

// provideMemoryOTPStore returns the in-memory store when the memory
// backend is selected, nil otherwise. The nil is deliberate: the sweep job
// takes it to mean "nothing to sweep".
func provideMemoryOTPStore(cfg *config.Config, logger *zap.Logger) *auth.MemoryOTPStore {
	if cfg.OTPStoreBackend != "memory" {
		return nil
	}
	return auth.NewMemoryOTPStore(cfg.OTPTTL, logger.Named("MemoryOTPStore"))
}

// provideOTPStore selects the configured OTP backend.
func provideOTPStore(cfg *config.Config, memory *auth.MemoryOTPStore) (auth.OTPStore, func(), error) {
	if memory != nil {
		return memory, func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Printf("ERROR: Failed to close redis client: %v", err)
		}
	}
	return auth.NewRedisOTPStore(rdb, cfg.OTPTTL), cleanup, nil
}

// provideLogger builds the zap logger with a flush-on-shutdown cleanup.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zl, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return zl, func() { _ = zl.Sync() }, nil
}

// provideDatabase opens the gateway database with a close-on-shutdown
// cleanup.
func provideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { database.CloseGORMDB(db) }, nil
}
