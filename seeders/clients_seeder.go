package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedClients(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'clients'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range clientsData {
		var exists bool
		err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)", c.Email).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			log.Printf("    - Клиент '%s' уже существует. Пропускаем.", c.DisplayName())
			continue
		}
		query := `INSERT INTO clients (client_type, name, surname, company_name, vat_number, email, phone, city)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, query, c.ClientType, c.Name, c.Surname, c.CompanyName, c.VatNumber, c.Email, c.Phone, c.City); err != nil {
			log.Printf("Ошибка при вставке клиента '%s': %v", c.DisplayName(), err)
			return err
		}
		log.Printf("    - Клиент '%s' создан.", c.DisplayName())
	}

	return tx.Commit(ctx)
}
