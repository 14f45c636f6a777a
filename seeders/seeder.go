package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAll наполняет операторов и, если withClients, демонстрационных клиентов.
func SeedAll(ctx context.Context, db *pgxpool.Pool, withClients bool) error {
	log.Println("▶️  Запуск наполнения базы...")

	if err := seedOperators(ctx, db); err != nil {
		return fmt.Errorf("ошибка наполнения Операторов (operators): %w", err)
	}
	if withClients {
		if err := seedClients(ctx, db); err != nil {
			return fmt.Errorf("ошибка наполнения Клиентов (clients): %w", err)
		}
	}

	log.Println("✅ Наполнение базы завершено!")
	return nil
}
