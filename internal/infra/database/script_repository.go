package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ScriptRepository struct {
	DB *sql.DB
}

func NewScriptRepository(db *sql.DB) *ScriptRepository {
	return &ScriptRepository{DB: db}
}

func (r *ScriptRepository) List(ctx context.Context) ([]*entity.Script, error) {
	query := `
		SELECT id, title, content, type, is_default, created_at
		FROM scripts
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar scripts: %w", err)
	}
	defer rows.Close()

	var scripts []*entity.Script
	for rows.Next() {
		var s entity.Script
		var scriptType string
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &scriptType, &s.IsDefault, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Type = entity.ScriptType(scriptType)
		scripts = append(scripts, &s)
	}

	return scripts, rows.Err()
}

func (r *ScriptRepository) FindByID(ctx context.Context, id string) (*entity.Script, error) {
	query := `
		SELECT id, title, content, type, is_default, created_at
		FROM scripts
		WHERE id = $1
	`

	var s entity.Script
	var scriptType string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Content, &scriptType, &s.IsDefault, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("script não encontrado: %s", id)
		}
		return nil, err
	}
	s.Type = entity.ScriptType(scriptType)

	return &s, nil
}

// Save faz upsert por id. Marcar um script como padrão desmarca os demais na
// mesma transação.
func (r *ScriptRepository) Save(ctx context.Context, script *entity.Script) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	if script.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE scripts SET is_default = FALSE WHERE id <> $1`, script.ID); err != nil {
			return fmt.Errorf("falha ao limpar script padrão: %w", err)
		}
	}

	query := `
		INSERT INTO scripts (id, title, content, type, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			type = EXCLUDED.type,
			is_default = EXCLUDED.is_default
	`

	_, err = tx.ExecContext(ctx, query,
		script.ID,
		script.Title,
		script.Content,
		string(script.Type),
		script.IsDefault,
		script.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar script: %w", err)
	}

	return tx.Commit()
}

func (r *ScriptRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM scripts WHERE id = $1`, id)
	return err
}
