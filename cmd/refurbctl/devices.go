package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"refurb-tracker/internal/repositories"
	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/validation"
)

// deviceExcel собирает сервисы без HTTP-слоя. События уходят в шину без
// подписчиков: триггеры БД всё равно оповестят запущенный сервер.
func deviceExcel(pool *pgxpool.Pool, logger *zap.Logger) (*services.DeviceExcelService, *eventbus.Bus) {
	bus := eventbus.New(logger)
	deviceRepo := repositories.NewDeviceRepository(pool, logger, nil)
	interventionRepo := repositories.NewInterventionRepository(pool, logger, nil)
	fileRepo := repositories.NewFileRepository(pool, logger)
	deviceService := services.NewDeviceService(deviceRepo, interventionRepo, fileRepo, repositories.NewTxManager(pool), bus, logger)
	return services.NewDeviceExcelService(deviceService, deviceRepo, validation.New(), logger), bus
}

func withDeviceExcel(cli *cliContext, fn func(ctx context.Context, excel *services.DeviceExcelService) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := cli.connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		excel, bus := deviceExcel(pool, cli.logger)
		defer bus.Wait()
		return fn(ctx, excel)
	}
}

func importCommand(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Импорт данных из файлов",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "devices <file.xlsx>",
		Short: "Импортировать устройства из Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeviceExcel(cli, func(ctx context.Context, excel *services.DeviceExcelService) error {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("не удалось открыть файл: %w", err)
				}
				defer f.Close()

				result, err := excel.Import(ctx, f)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Создано: %d, пропущено: %d, ошибок: %d\n", result.Created, result.Skipped, len(result.Errors))
				for _, e := range result.Errors {
					fmt.Fprintf(out, "  строка %d: %s\n", e.Row, e.Message)
				}
				return nil
			})(cmd, args)
		},
	})
	return cmd
}

func exportCommand(cli *cliContext) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузка данных в файлы",
	}
	devices := &cobra.Command{
		Use:   "devices <file.xlsx>",
		Short: "Выгрузить устройства в Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeviceExcel(cli, func(ctx context.Context, excel *services.DeviceExcelService) error {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("не удалось создать файл: %w", err)
				}
				count, err := excel.Export(ctx, types.Filter{Search: search}, f)
				if closeErr := f.Close(); err == nil {
					err = closeErr
				}
				if err != nil {
					return err
				}
				cli.logger.Info("Устройства выгружены", zap.Int("count", count), zap.String("file", args[0]))
				return nil
			})(cmd, args)
		},
	}
	devices.Flags().StringVar(&search, "search", "", "поисковая строка, как в списке устройств")
	cmd.AddCommand(devices)
	return cmd
}
