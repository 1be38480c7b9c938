package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/app"
	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/logging"
	"communityconnect.org/internal/restapi"
	"communityconnect.org/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := appconf.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err = parseFlags(cfg, os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewEnvironmentLogger(os.Stdout, cfg.Env, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// parseFlags overlays command line flags on cfg. Values from the environment
// act as flag defaults.
func parseFlags(cfg appconf.Config, args []string, output io.Writer) (appconf.Config, error) {
	flags := flag.NewFlagSet("api", flag.ContinueOnError)
	flags.SetOutput(output)

	var env string
	flags.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	flags.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	flags.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per client, 0 disables limiting")
	flags.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "Take client addresses from X-Forwarded-For (only behind a proxy that sets it)")
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Database driver (sqlite|postgres)")
	flags.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "SQLite file path or Postgres connection URL")
	flags.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "JSON file of businesses to load on startup")
	flags.Float64Var(&cfg.DefaultLocation.Lat, "default-lat", cfg.DefaultLocation.Lat, "Latitude of the default reference point")
	flags.Float64Var(&cfg.DefaultLocation.Lon, "default-lon", cfg.DefaultLocation.Lon, "Longitude of the default reference point")
	flags.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)

	if err := cfg.DefaultLocation.Validate(); err != nil {
		fmt.Fprintf(output, "invalid default location: %v\n", err)
		return cfg, err
	}
	return cfg, nil
}

// buildHandler mounts the REST API, plus the debug pages in development.
func buildHandler(application *app.Application, api *restapi.RestAPI) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", api.Routes())
	if application.Config.Env == appconf.Development {
		webui.New(application).SetWebUIRoutes(mux)
	}
	return mux
}

func run(ctx context.Context, cfg appconf.Config, logger *slog.Logger) error {
	driver, err := directorydb.ParseDriver(cfg.DBDriver)
	if err != nil {
		return err
	}

	dbConfig := directorydb.NewConfig(driver, cfg.DBDSN, cfg.Env, cfg.Verbose)
	dbConfig.Logger = logger
	db, err := directorydb.NewClient(dbConfig)
	if err != nil {
		return fmt.Errorf("open directory database: %w", err)
	}
	defer logging.SafeCloseWithLogging(db, logger, "directory_database")

	if cfg.SeedPath != "" {
		if _, err := db.SeedFromJSON(ctx, cfg.SeedPath); err != nil {
			return err
		}
	}

	application := app.New(cfg, logger, db)
	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           buildHandler(application, api),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()),
			slog.String("db_driver", string(driver)))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
