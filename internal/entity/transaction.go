package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction é um lançamento simples de caixa (entrada ou saída).
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewTransaction(description string, amount float64, txType TransactionType, category string, date time.Time) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New().String(),
		Description: description,
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

func (t *Transaction) Validate() error {
	if t.Description == "" {
		return errors.New("description is required")
	}
	if t.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !t.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	return nil
}

type TransactionRepositoryInterface interface {
	List(ctx context.Context) ([]*Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id string) error
}
