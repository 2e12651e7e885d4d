// Command ledgerctl prints books and statements from the ledger database and
// performs maintenance tasks such as seeding the chart of accounts.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ledgerbook/internal/config"
	"ledgerbook/internal/database"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/server"
)

// cli carries the state shared by every subcommand. db is opened lazily so
// commands that never touch the ledger run without a database.
type cli struct {
	out io.Writer
	now func() time.Time

	cfg     *config.Config
	db      *gorm.DB
	manager *database.Manager
	svc     *server.Services
}

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	app := &cli{out: os.Stdout, now: time.Now}
	defer app.close()

	if err := newRootCmd(app).Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(app *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Double-entry ledger maintenance and reports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.cfg != nil {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			app.cfg = cfg
			return nil
		},
	}
	rootCmd.SetOut(app.out)

	rootCmd.AddCommand(
		newSeedCmd(app),
		newCashBookCmd(app),
		newGeneralLedgerCmd(app),
		newTrialBalanceCmd(app),
		newDepreciationCmd(app),
		newTokenCmd(app),
	)
	return rootCmd
}

// services opens the configured database on first use and builds the
// ledger services over it.
func (a *cli) services() (*server.Services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	svc, err := server.NewServices(db, a.cfg, a.now)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *cli) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, err
	}
	if err := manager.Migrate(); err != nil {
		manager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	a.manager = manager
	a.db = manager.DB()
	return a.db, nil
}

func (a *cli) close() {
	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			logger.Get().Warnf("failed to close database: %v", err)
		}
	}
}
