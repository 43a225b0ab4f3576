package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	query := `
		SELECT id, description, amount, type, category, date, created_at
		FROM transactions
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar transações: %w", err)
	}
	defer rows.Close()

	var transactions []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		var txType string
		var category sql.NullString
		err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount, &txType, &category, &tx.Date, &tx.CreatedAt)
		if err != nil {
			return nil, err
		}
		tx.Type = entity.TransactionType(txType)
		tx.Category = category.String
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) Save(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, description, amount, type, category, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			date = EXCLUDED.date
	`

	_, err := r.DB.ExecContext(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount,
		string(tx.Type),
		nullString(tx.Category),
		tx.Date,
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar transação: %w", err)
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}
