package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lucasferraz/prospecta/internal/entity"
)

// SettingsRepository guarda a única linha de configuração do operador
// (id fixo 'default', sistema single-tenant).
type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	query := `
		SELECT id, services_offered, avg_ticket, daily_limit, ideal_client,
		       preferred_hours, operator_email
		FROM settings
		WHERE id = 'default'
	`

	var settings entity.Settings
	var idealClient, preferredHours, operatorEmail sql.NullString

	err := r.DB.QueryRowContext(ctx, query).Scan(
		&settings.ID,
		pq.Array(&settings.ServicesOffered),
		&settings.AvgTicket,
		&settings.DailyLimit,
		&idealClient,
		&preferredHours,
		&operatorEmail,
	)
	if err != nil {
		// Primeira execução: ainda não existe linha salva.
		if errors.Is(err, sql.ErrNoRows) {
			return entity.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("falha ao carregar configurações: %w", err)
	}

	settings.IdealClient = idealClient.String
	settings.PreferredHours = preferredHours.String
	settings.OperatorEmail = operatorEmail.String

	return &settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	query := `
		INSERT INTO settings (id, services_offered, avg_ticket, daily_limit,
		                      ideal_client, preferred_hours, operator_email)
		VALUES ('default', $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			services_offered = EXCLUDED.services_offered,
			avg_ticket = EXCLUDED.avg_ticket,
			daily_limit = EXCLUDED.daily_limit,
			ideal_client = EXCLUDED.ideal_client,
			preferred_hours = EXCLUDED.preferred_hours,
			operator_email = EXCLUDED.operator_email
	`

	_, err := r.DB.ExecContext(ctx, query,
		pq.Array(settings.ServicesOffered),
		settings.AvgTicket,
		settings.DailyLimit,
		nullString(settings.IdealClient),
		nullString(settings.PreferredHours),
		nullString(settings.OperatorEmail),
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar configurações: %w", err)
	}

	return nil
}
