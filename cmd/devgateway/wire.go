// File: cmd/devgateway/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"bluestock_client/internal/analytics"
	"bluestock_client/internal/app"
	"bluestock_client/internal/auth"
	"bluestock_client/internal/company"
	"bluestock_client/internal/config"
	"bluestock_client/internal/jobs"
	"bluestock_client/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		provideLogger,
		provideDatabase,

		// Accounts
		provideUserRepository,
		user.NewService,

		// Auth
		auth.NewTokenService,
		provideMemoryOTPStore,
		provideOTPStore,
		auth.NewService,
		auth.NewHandler,

		// Directory + analytics
		company.NewStore,
		company.NewHandler,
		analytics.NewHandler,

		// Jobs
		jobs.NewOTPExpiryJob,

		// Application layer
		app.NewServer,
	)
	return nil, nil, nil
}
