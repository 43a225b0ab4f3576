package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	query := `
		SELECT p.id, p.lead_id, COALESCE(l.name, ''), p.title, p.service_type,
		       p.agreed_value, p.start_date, p.deadline, p.status, p.checklist, p.created_at
		FROM projects p
		LEFT JOIN leads l ON l.id = p.lead_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar projetos: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT p.id, p.lead_id, COALESCE(l.name, ''), p.title, p.service_type,
		       p.agreed_value, p.start_date, p.deadline, p.status, p.checklist, p.created_at
		FROM projects p
		LEFT JOIN leads l ON l.id = p.lead_id
		WHERE p.id = $1
	`

	project, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("projeto não encontrado: %s", id)
		}
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	// O checklist vai como jsonb: os 5 marcos mudam juntos e nunca são
	// filtrados por SQL.
	checklist, err := json.Marshal(project.Checklist)
	if err != nil {
		return fmt.Errorf("falha ao converter checklist: %w", err)
	}

	query := `
		INSERT INTO projects (id, lead_id, title, service_type, agreed_value,
		                      start_date, deadline, status, checklist, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			service_type = EXCLUDED.service_type,
			agreed_value = EXCLUDED.agreed_value,
			deadline = EXCLUDED.deadline,
			status = EXCLUDED.status,
			checklist = EXCLUDED.checklist
	`

	_, err = r.DB.ExecContext(ctx, query,
		project.ID,
		project.LeadID,
		project.Title,
		project.ServiceType,
		project.AgreedValue,
		project.StartDate,
		project.Deadline,
		string(project.Status),
		checklist,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar projeto: %w", err)
	}

	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var project entity.Project
	var deadline sql.NullTime
	var status string
	var checklist []byte

	err := row.Scan(
		&project.ID,
		&project.LeadID,
		&project.LeadName,
		&project.Title,
		&project.ServiceType,
		&project.AgreedValue,
		&project.StartDate,
		&deadline,
		&status,
		&checklist,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Status = entity.ProjectStatus(status)
	if deadline.Valid {
		t := deadline.Time
		project.Deadline = &t
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &project.Checklist); err != nil {
			return nil, fmt.Errorf("checklist corrompido no projeto %s: %w", project.ID, err)
		}
	}

	return &project, nil
}
