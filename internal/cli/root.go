// Package cli implements the ledger command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Alp4ka/gotable/internal/config"
	"github.com/Alp4ka/gotable/internal/ledger"
	"github.com/Alp4ka/gotable/internal/logging"
)

// app holds the state shared by the subcommands once the root command has
// run its setup.
type app struct {
	cfg  *config.Config
	db   *gorm.DB
	repo *ledger.Repository
}

// NewRootCmd creates the root "ledger" command with all subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Personal income and expense ledger",
		Long:          "ledger records income and expenses and lists them with search, filters, sorting and pagination.",
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("db-driver", "", "database driver: sqlite, mysql or postgres (overrides LEDGER_DB_DRIVER)")
	cmd.PersistentFlags().String("db-dsn", "", "database DSN (overrides LEDGER_DB_DSN)")
	cmd.AddCommand(newAddCmd(a), newListCmd(a), newDeleteCmd(a), newReportCmd(a))

	return cmd
}

const rootCmdExample = `  # Record an expense of 45.00 (amounts are in minor units)
  ledger add --user ana --type expense --amount 4500 --category food --description "Lunch"

  # Second page of food expenses, newest first
  ledger list --user ana --filter type=EXPENSE --filter category=food --sort "date desc" --page 1

  # Same query executed by the database
  ledger list --user ana --filter type=EXPENSE --server-side

  # Monthly report for the first quarter
  ledger report --user ana --from 2024-01 --to 2024-03`

func (a *app) setup(cmd *cobra.Command) error {
	config.LoadEnvFile()
	cfg := config.Load()

	if driver, _ := cmd.Flags().GetString("db-driver"); driver != "" {
		cfg.DBDriver = driver
	}
	if dsn, _ := cmd.Flags().GetString("db-dsn"); dsn != "" {
		cfg.DBDSN = dsn
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
		cfg.LogFormat = logging.FormatConsole
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Component(logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()), "cli")
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	db, err := ledger.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err = ledger.Migrate(db); err != nil {
		return errors.Join(err, ledger.Close(db))
	}

	a.cfg = cfg
	a.db = db
	a.repo = ledger.NewRepository(db)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("driver", cfg.DBDriver).
		Msg("command started")

	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}

	err := ledger.Close(a.db)
	a.db = nil

	return err
}
