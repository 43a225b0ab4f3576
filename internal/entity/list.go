package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// List é uma lista de prospecção (ex: "Restaurantes SP", "Dentistas").
type List struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DefaultScriptID string    `json:"default_script_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewList(name, description string) (*List, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &List{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

type ListRepositoryInterface interface {
	List(ctx context.Context) ([]*List, error)
	FindByID(ctx context.Context, id string) (*List, error)
	Save(ctx context.Context, list *List) error
	Delete(ctx context.Context, id string) error
}
