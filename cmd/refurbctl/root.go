package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"refurb-tracker/pkg/config"
	"refurb-tracker/pkg/database/postgresql"
	"refurb-tracker/pkg/logger"
)

// cliContext создаётся один раз в PersistentPreRunE и общий для подкоманд.
type cliContext struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (c *cliContext) connect(ctx context.Context) (*pgxpool.Pool, error) {
	return postgresql.ConnectDB(ctx, c.cfg.Postgres.DSN, c.logger)
}

func rootCommand() *cobra.Command {
	cli := &cliContext{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:          "refurbctl",
		Short:        "Утилита обслуживания refurb-tracker",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.cfg = config.New()
			if logLevel == "" {
				logLevel = cli.cfg.Log.Level
			}
			// CLI пишет только в stdout, файл логов остаётся серверу.
			cli.logger = logger.NewLogger(logLevel, "")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli.logger != nil {
				_ = cli.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень логирования (debug, info, warn, error)")

	rootCmd.AddCommand(
		migrateCommand(cli),
		seedCommand(cli),
		importCommand(cli),
		exportCommand(cli),
		tokenCommand(cli),
	)
	return rootCmd
}
