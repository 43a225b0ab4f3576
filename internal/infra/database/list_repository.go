package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ListRepository struct {
	DB *sql.DB
}

func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{DB: db}
}

func (r *ListRepository) List(ctx context.Context) ([]*entity.List, error) {
	query := `
		SELECT id, name, description, default_script_id, created_at
		FROM lists
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar listas: %w", err)
	}
	defer rows.Close()

	var lists []*entity.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

func (r *ListRepository) FindByID(ctx context.Context, id string) (*entity.List, error) {
	query := `
		SELECT id, name, description, default_script_id, created_at
		FROM lists
		WHERE id = $1
	`

	list, err := scanList(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lista não encontrada: %s", id)
		}
		return nil, err
	}

	return list, nil
}

func (r *ListRepository) Save(ctx context.Context, list *entity.List) error {
	query := `
		INSERT INTO lists (id, name, description, default_script_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			default_script_id = EXCLUDED.default_script_id
	`

	_, err := r.DB.ExecContext(ctx, query,
		list.ID,
		list.Name,
		nullString(list.Description),
		nullString(list.DefaultScriptID),
		list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar lista: %w", err)
	}

	return nil
}

// Delete remove a lista. Os leads dela continuam existindo, só perdem o
// vínculo (FK com ON DELETE SET NULL).
func (r *ListRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	return err
}

func scanList(row rowScanner) (*entity.List, error) {
	var list entity.List
	var description, defaultScriptID sql.NullString

	err := row.Scan(&list.ID, &list.Name, &description, &defaultScriptID, &list.CreatedAt)
	if err != nil {
		return nil, err
	}

	list.Description = description.String
	list.DefaultScriptID = defaultScriptID.String
	return &list, nil
}
