package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, company, instagram_handle, whatsapp, niche, interested_service,
	status, script_id, list_id, temperature, quick_note, last_action,
	last_contacted_at, created_at
`

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead não encontrado: %s", id)
		}
		return nil, err
	}

	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.History = history

	return lead, nil
}

// Save faz upsert por id: o front manda o lead inteiro e o banco decide
// entre INSERT e UPDATE.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			company = EXCLUDED.company,
			instagram_handle = EXCLUDED.instagram_handle,
			whatsapp = EXCLUDED.whatsapp,
			niche = EXCLUDED.niche,
			interested_service = EXCLUDED.interested_service,
			status = EXCLUDED.status,
			script_id = EXCLUDED.script_id,
			list_id = EXCLUDED.list_id,
			temperature = EXCLUDED.temperature,
			quick_note = EXCLUDED.quick_note,
			last_action = EXCLUDED.last_action,
			last_contacted_at = EXCLUDED.last_contacted_at
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Company),
		lead.InstagramHandle,
		nullString(lead.WhatsApp),
		nullString(lead.Niche),
		nullString(lead.InterestedService),
		string(lead.Status),
		nullString(lead.ScriptID),
		nullString(lead.ListID),
		nullString(string(lead.Temperature)),
		nullString(lead.QuickNote),
		nullString(lead.LastAction),
		lead.LastContactedAt,
		lead.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("lead duplicado: %s", lead.InstagramHandle)
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

// BulkInsert grava um lote de importação em uma única transação. Handles já
// cadastrados são pulados, não abortam o lote.
func (r *LeadRepository) BulkInsert(ctx context.Context, leads []*entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (id, name, instagram_handle, niche, status, script_id, list_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (instagram_handle) DO NOTHING
	`

	for _, lead := range leads {
		_, err := tx.ExecContext(ctx, query,
			lead.ID,
			lead.Name,
			lead.InstagramHandle,
			nullString(lead.Niche),
			string(lead.Status),
			nullString(lead.ScriptID),
			nullString(lead.ListID),
			lead.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("falha ao inserir lead %s: %w", lead.InstagramHandle, err)
		}
	}

	return tx.Commit()
}

// ListOverdueFollowUps devolve os leads em negociação sem contato há 48h ou
// mais, do mais esquecido para o mais recente.
func (r *LeadRepository) ListOverdueFollowUps(ctx context.Context, now time.Time) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE status IN ('PENDING', 'IN_NEGOTIATION', 'BUDGET_SENT')
		  AND last_contacted_at IS NOT NULL
		  AND last_contacted_at <= $1 - INTERVAL '48 hours'
		ORDER BY last_contacted_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar follow-ups atrasados: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) AppendHistory(ctx context.Context, leadID string, item entity.HistoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Date.IsZero() {
		item.Date = time.Now()
	}

	query := `
		INSERT INTO lead_history (id, lead_id, date, type, content)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, item.ID, leadID, item.Date, string(item.Type), item.Content)
	if err != nil {
		return fmt.Errorf("falha ao gravar histórico do lead %s: %w", leadID, err)
	}
	return nil
}

func (r *LeadRepository) loadHistory(ctx context.Context, leadID string) ([]entity.HistoryItem, error) {
	query := `
		SELECT id, date, type, content
		FROM lead_history
		WHERE lead_id = $1
		ORDER BY date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar histórico: %w", err)
	}
	defer rows.Close()

	var history []entity.HistoryItem
	for rows.Next() {
		var item entity.HistoryItem
		var itemType string
		if err := rows.Scan(&item.ID, &item.Date, &itemType, &item.Content); err != nil {
			return nil, err
		}
		item.Type = entity.HistoryType(itemType)
		history = append(history, item)
	}

	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var company, whatsapp, niche, service sql.NullString
	var scriptID, listID, temperature, quickNote, lastAction sql.NullString
	var lastContactedAt sql.NullTime
	var status string

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&company,
		&lead.InstagramHandle,
		&whatsapp,
		&niche,
		&service,
		&status,
		&scriptID,
		&listID,
		&temperature,
		&quickNote,
		&lastAction,
		&lastContactedAt,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Company = company.String
	lead.WhatsApp = whatsapp.String
	lead.Niche = niche.String
	lead.InterestedService = service.String
	lead.Status = entity.LeadStatus(status)
	lead.ScriptID = scriptID.String
	lead.ListID = listID.String
	lead.Temperature = entity.Temperature(temperature.String)
	lead.QuickNote = quickNote.String
	lead.LastAction = lastAction.String
	if lastContactedAt.Valid {
		t := lastContactedAt.Time
		lead.LastContactedAt = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
