package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScriptType é um enum fechado. A partição abertura/objeção sai do enum,
// nunca de substring no rótulo exibido.
type ScriptType string

const (
	ScriptShortOpener  ScriptType = "SHORT_OPENER"
	ScriptMediumOpener ScriptType = "MEDIUM_OPENER"
	ScriptFollowUp     ScriptType = "FOLLOW_UP"
	ScriptReengagement ScriptType = "REENGAGEMENT"
	ScriptFullPitch    ScriptType = "FULL_PITCH"

	ScriptObjectionPrice   ScriptType = "OBJECTION_PRICE"
	ScriptObjectionPartner ScriptType = "OBJECTION_PARTNER"
	ScriptObjectionLater   ScriptType = "OBJECTION_LATER"
	ScriptObjectionTrust   ScriptType = "OBJECTION_TRUST"
)

var scriptTypeLabels = map[ScriptType]string{
	ScriptShortOpener:      "Abertura Curta",
	ScriptMediumOpener:     "Abertura Média",
	ScriptFollowUp:         "Follow-up",
	ScriptReengagement:     "Reengajamento",
	ScriptFullPitch:        "Script Completo",
	ScriptObjectionPrice:   "Objeção: Preço",
	ScriptObjectionPartner: "Objeção: Sócio",
	ScriptObjectionLater:   "Objeção: Momento",
	ScriptObjectionTrust:   "Objeção: Confiança",
}

func (t ScriptType) Valid() bool {
	_, ok := scriptTypeLabels[t]
	return ok
}

func (t ScriptType) Label() string {
	if label, ok := scriptTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsObjection diz se o script pertence ao pool de objeções. Objeções são
// material de consulta e nunca elegíveis como abordagem atual.
func (t ScriptType) IsObjection() bool {
	switch t {
	case ScriptObjectionPrice, ScriptObjectionPartner, ScriptObjectionLater, ScriptObjectionTrust:
		return true
	}
	return false
}

type Script struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Type      ScriptType `json:"type"`
	IsDefault bool       `json:"is_default,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewScript(title, content string, scriptType ScriptType) (*Script, error) {
	script := &Script{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Type:      scriptType,
		CreatedAt: time.Now(),
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return script, nil
}

func (s *Script) Validate() error {
	if s.Title == "" {
		return errors.New("title is required")
	}
	if s.Content == "" {
		return errors.New("content is required")
	}
	if !s.Type.Valid() {
		return errors.New("invalid script type")
	}
	return nil
}

type ScriptRepositoryInterface interface {
	List(ctx context.Context) ([]*Script, error)
	FindByID(ctx context.Context, id string) (*Script, error)
	Save(ctx context.Context, script *Script) error
	Delete(ctx context.Context, id string) error
}
