package entity

import "context"

// Settings é a configuração única do operador (sistema single-tenant).
type Settings struct {
	ID              string   `json:"id"`
	ServicesOffered []string `json:"services_offered"`
	AvgTicket       float64  `json:"avg_ticket"`
	DailyLimit      int      `json:"daily_limit"`
	IdealClient     string   `json:"ideal_client"`
	PreferredHours  string   `json:"preferred_hours"`
	OperatorEmail   string   `json:"operator_email,omitempty"`
}

// DefaultSettings cobre a primeira execução, antes de qualquer salvamento.
func DefaultSettings() *Settings {
	return &Settings{
		ID:              "default",
		ServicesOffered: []string{"Identidade Visual", "Social Media", "Web Design", "Landing Page"},
		AvgTicket:       1500,
		DailyLimit:      20,
		IdealClient:     "Pequenas empresas locais",
		PreferredHours:  "09:00 - 11:00",
	}
}

type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}
