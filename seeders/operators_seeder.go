package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedOperators(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'operators'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range operatorsData {
		var exists bool
		err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM operators WHERE LOWER(email) = LOWER($1))", o.Email).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			log.Printf("    - Оператор '%s' уже существует. Пропускаем.", o.Email)
			continue
		}
		query := `INSERT INTO operators (name, surname, email, phone, role, active) VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.Exec(ctx, query, o.Name, o.Surname, o.Email, o.Phone, o.Role, o.Active); err != nil {
			log.Printf("Ошибка при вставке оператора '%s': %v", o.Email, err)
			return err
		}
		log.Printf("    - Оператор '%s' (%s) создан.", o.FullName(), o.Role)
	}

	return tx.Commit(ctx)
}
