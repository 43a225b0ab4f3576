package usecase

import (
	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/infra/integration/social"
)

// RenderedScript é um script já resolvido para o lead atual, pronto para
// copiar e colar.
type RenderedScript struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Type    entity.ScriptType `json:"type"`
	Content string            `json:"content"`
}

// SessionView é a fotografia da sessão que o handler devolve ao front.
type SessionView struct {
	Phase          SessionPhase     `json:"phase"`
	QueueSize      int              `json:"queue_size"`
	Cursor         int              `json:"cursor"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
	CurrentLead    *entity.Lead     `json:"current_lead,omitempty"`
	Draft          *WorkingDraft    `json:"draft,omitempty"`
	RenderedScript string           `json:"rendered_script,omitempty"`
	Openers        []*entity.Script `json:"openers,omitempty"`
	Objections     []RenderedScript `json:"objections,omitempty"`

	// Deep links para abrir o lead atual em outra aba.
	InstagramURL string `json:"instagram_url,omitempty"`
	WhatsAppURL  string `json:"whatsapp_url,omitempty"`
}

// Snapshot monta a SessionView inteira sob uma única aquisição do lock: um
// poll de 1s corre contra o POST de desfecho o tempo todo, e a fase não pode
// virar no meio da montagem. Fora de ACTIVE os campos de lead ficam vazios
// de propósito.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Tick()
	view := SessionView{
		Phase:          s.phase,
		QueueSize:      len(s.queue),
		Cursor:         s.cursor,
		ElapsedSeconds: s.timer.ElapsedSeconds(),
	}

	if s.phase != PhaseActive {
		return view
	}

	lead := *s.queue[s.cursor]
	draft := s.draft
	view.CurrentLead = &lead
	view.Draft = &draft
	view.RenderedScript = s.renderCurrentLocked()
	view.Openers = s.openers
	view.Objections = s.renderObjectionsLocked()
	view.InstagramURL = social.InstagramURL(lead.InstagramHandle)
	view.WhatsAppURL = social.WhatsAppURL(lead.WhatsApp)
	return view
}
