package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"refurb-tracker/migrations"
)

func migrateCommand(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой базы данных",
	}

	withMigrator := func(fn func(cmd *cobra.Command, m *migrations.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := cli.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			m, err := migrations.NewMigrator(pool)
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Применить все ожидающие миграции",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator) error {
				versions, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				if len(versions) == 0 {
					cli.logger.Info("Схема актуальна, миграций нет")
					return nil
				}
				cli.logger.Info("Миграции применены", zap.Int64s("versions", versions))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Откатить последнюю миграцию",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator) error {
				version, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				cli.logger.Info("Миграция откачена", zap.Int64("version", version))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Показать состояние миграций",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, s := range statuses {
					state := "ожидает"
					if s.Applied {
						state = "применена"
					}
					fmt.Fprintf(out, "%05d  %-10s  %s\n", s.Version, state, s.Path)
				}
				return nil
			}),
		},
	)
	return cmd
}
