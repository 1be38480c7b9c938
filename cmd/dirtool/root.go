package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/logging"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	dbDriver string
	dbDSN    string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := appconf.Default()

	cmd := &cobra.Command{
		Use:   "dirtool",
		Short: "Manage the business directory database",
		Long: `dirtool creates and seeds the business directory database, prints
businesses ranked by distance and exports them to a spreadsheet.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg, err := appconf.FromEnv()
			if err != nil {
				return err
			}
			// Environment values apply only where no flag was given.
			if !cmd.Flags().Changed("db-driver") {
				opts.dbDriver = cfg.DBDriver
			}
			if !cmd.Flags().Changed("db-dsn") {
				opts.dbDSN = cfg.DBDSN
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbDriver, "db-driver", defaults.DBDriver, "database driver (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.dbDSN, "db-dsn", defaults.DBDSN, "SQLite file path or Postgres connection URL")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newRankCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewEnvironmentLogger(cmd.ErrOrStderr(), appconf.Development, o.verbose)
}

// openClient opens the configured database. The schema is created on open.
func (o *rootOptions) openClient(cmd *cobra.Command) (*directorydb.Client, error) {
	driver, err := directorydb.ParseDriver(o.dbDriver)
	if err != nil {
		return nil, err
	}

	config := directorydb.NewConfig(driver, o.dbDSN, appconf.Development, o.verbose)
	config.Logger = o.logger(cmd)
	return directorydb.NewClient(config)
}
