package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// LeadStatus é um conjunto fechado. O valor persistido é a chave canônica,
// nunca o rótulo de exibição.
type LeadStatus string

const (
	StatusNew             LeadStatus = "NEW"
	StatusContacted       LeadStatus = "CONTACTED"
	StatusPending         LeadStatus = "PENDING"
	StatusResponded       LeadStatus = "RESPONDED"
	StatusInNegotiation   LeadStatus = "IN_NEGOTIATION"
	StatusBudgetSent      LeadStatus = "BUDGET_SENT"
	StatusWaitingApproval LeadStatus = "WAITING_APPROVAL"
	StatusNotInterested   LeadStatus = "NOT_INTERESTED"
	StatusClosed          LeadStatus = "CLOSED"
	StatusArchived        LeadStatus = "ARCHIVED"
)

var leadStatusLabels = map[LeadStatus]string{
	StatusNew:             "Novo",
	StatusContacted:       "Abordado",
	StatusPending:         "Pendente",
	StatusResponded:       "Respondeu",
	StatusInNegotiation:   "Em Negociação",
	StatusBudgetSent:      "Orçamento Enviado",
	StatusWaitingApproval: "Aguardando Aprovação",
	StatusNotInterested:   "Sem Interesse",
	StatusClosed:          "Fechado",
	StatusArchived:        "Arquivado",
}

func (s LeadStatus) Valid() bool {
	_, ok := leadStatusLabels[s]
	return ok
}

// Label retorna o rótulo em português para exibição no front.
func (s LeadStatus) Label() string {
	if label, ok := leadStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Temperature é a etiqueta rápida de qualificação do lead.
type Temperature string

const (
	TemperatureHot  Temperature = "HOT"
	TemperatureWarm Temperature = "WARM"
	TemperatureCold Temperature = "COLD"
	TemperatureNone Temperature = ""
)

func (t Temperature) Valid() bool {
	switch t {
	case TemperatureHot, TemperatureWarm, TemperatureCold, TemperatureNone:
		return true
	}
	return false
}

type HistoryType string

const (
	HistoryNote         HistoryType = "NOTE"
	HistoryStatusChange HistoryType = "STATUS_CHANGE"
	HistoryContact      HistoryType = "CONTACT"
)

// HistoryItem é imutável depois de anexado ao lead.
type HistoryItem struct {
	ID      string      `json:"id"`
	Date    time.Time   `json:"date"`
	Type    HistoryType `json:"type"`
	Content string      `json:"content"`
}

type Lead struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Company           string        `json:"company,omitempty"`
	InstagramHandle   string        `json:"instagram_handle"`
	WhatsApp          string        `json:"whatsapp,omitempty"`
	Niche             string        `json:"niche"`
	InterestedService string        `json:"interested_service,omitempty"`
	Status            LeadStatus    `json:"status"`
	ScriptID          string        `json:"script_id,omitempty"`
	ListID            string        `json:"list_id,omitempty"`
	Temperature       Temperature   `json:"temperature,omitempty"`
	QuickNote         string        `json:"quick_note,omitempty"`
	LastAction        string        `json:"last_action,omitempty"`
	LastContactedAt   *time.Time    `json:"last_contacted_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	History           []HistoryItem `json:"history,omitempty"`
}

// Factory
func NewLead(name, handle, niche, listID string) (*Lead, error) {
	lead := &Lead{
		ID:              uuid.New().String(),
		Name:            name,
		InstagramHandle: NormalizeHandle(handle),
		Niche:           niche,
		Status:          StatusNew,
		ListID:          listID,
		CreatedAt:       time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.InstagramHandle == "" || l.InstagramHandle == "@" {
		return errors.New("instagram handle is required")
	}
	if !strings.HasPrefix(l.InstagramHandle, "@") {
		return errors.New("instagram handle must start with @")
	}
	if !l.Status.Valid() {
		return errors.New("invalid lead status")
	}
	return nil
}

// NormalizeHandle garante o prefixo @ canônico.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return handle
	}
	if !strings.HasPrefix(handle, "@") {
		return "@" + handle
	}
	return handle
}

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Save(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	BulkInsert(ctx context.Context, leads []*Lead) error
	AppendHistory(ctx context.Context, leadID string, item HistoryItem) error

	// ListOverdueFollowUps retorna leads em status de negociação ativa
	// sem contato há 48h ou mais.
	ListOverdueFollowUps(ctx context.Context, now time.Time) ([]*Lead, error)
}
