package app

import (
	"log/slog"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/directory"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	DB        *directorydb.Client
	Directory *directory.Manager
}

// New wires an Application around an open store. The directory manager
// ranks around the configured default location.
func New(cfg appconf.Config, logger *slog.Logger, db *directorydb.Client) *Application {
	return &Application{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Directory: directory.NewManager(db, cfg.DefaultLocation, logger),
	}
}
