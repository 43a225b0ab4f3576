package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/infra/queue"
)

type SessionPhase string

const (
	PhaseEmpty   SessionPhase = "EMPTY"
	PhaseIdle    SessionPhase = "IDLE"
	PhaseActive  SessionPhase = "ACTIVE"
	PhaseSummary SessionPhase = "SUMMARY"
)

// WorkingDraft é a anotação em andamento do lead no cursor. É derivado do
// lead atual a cada avanço — edição de um lead nunca vaza para o próximo.
type WorkingDraft struct {
	Temperature entity.Temperature `json:"temperature"`
	QuickNote   string             `json:"quick_note"`
	ScriptID    string             `json:"script_id"`
}

type SessionSummary struct {
	LeadsActioned  int `json:"leads_actioned"`
	ElapsedSeconds int `json:"elapsed_seconds"`
}

// SessionEngine constrói sessões de prospecção a partir dos colaboradores
// de armazenamento. O publisher é opcional (nil desliga eventos).
type SessionEngine struct {
	Leads   entity.LeadRepositoryInterface
	Scripts entity.ScriptRepositoryInterface
	Events  queue.ContactEventPublisherInterface
	Now     func() time.Time
}

func NewSessionEngine(
	leads entity.LeadRepositoryInterface,
	scripts entity.ScriptRepositoryInterface,
	events queue.ContactEventPublisherInterface,
) *SessionEngine {
	return &SessionEngine{
		Leads:   leads,
		Scripts: scripts,
		Events:  events,
		Now:     time.Now,
	}
}

// BuildSession carrega leads e scripts uma única vez e monta a fila
// priorizada. A sessão nasce em IDLE (ou EMPTY, se não há o que prospectar).
func (e *SessionEngine) BuildSession(ctx context.Context) (*Session, error) {
	now := e.Now()

	allLeads, err := e.Leads.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao carregar leads: " + err.Error(),
			Err:     err,
		}
	}

	overdue, err := e.Leads.ListOverdueFollowUps(ctx, now)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao carregar follow-ups atrasados: " + err.Error(),
			Err:     err,
		}
	}

	scripts, err := e.Scripts.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao carregar scripts: " + err.Error(),
			Err:     err,
		}
	}

	var openers, objections []*entity.Script
	for _, s := range scripts {
		if s.Type.IsObjection() {
			objections = append(objections, s)
		} else {
			openers = append(openers, s)
		}
	}

	defaultScriptID := ""
	for _, s := range openers {
		if s.IsDefault {
			defaultScriptID = s.ID
			break
		}
	}
	if defaultScriptID == "" && len(openers) > 0 {
		defaultScriptID = openers[0].ID
	}

	workQueue := BuildQueue(allLeads, overdue, now)

	phase := PhaseIdle
	if len(workQueue) == 0 {
		phase = PhaseEmpty
	}

	return &Session{
		leads:           e.Leads,
		events:          e.Events,
		now:             e.Now,
		queue:           workQueue,
		phase:           phase,
		timer:           NewSessionTimer(e.Now),
		openers:         openers,
		objections:      objections,
		defaultScriptID: defaultScriptID,
	}, nil
}

// Session é o dono exclusivo da fila, do cursor e do rascunho durante uma
// sessão. As ações chegam via HTTP, então um mutex serializa os gatilhos do
// operador; dentro de uma ação não há concorrência.
type Session struct {
	mu     sync.Mutex
	leads  entity.LeadRepositoryInterface
	events queue.ContactEventPublisherInterface
	now    func() time.Time

	queue    []*entity.Lead
	cursor   int
	phase    SessionPhase
	timer    *SessionTimer
	actioned int
	draft    WorkingDraft

	openers         []*entity.Script
	objections      []*entity.Script
	defaultScriptID string

	// Garante no máximo uma escrita em voo por transição de lead.
	writePending bool
}

// Start move IDLE → ACTIVE: liga o timer, zera o contador e posiciona o
// cursor no primeiro lead.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle {
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("não é possível iniciar sessão em %s", s.phase),
		}
	}

	s.timer.Start()
	s.actioned = 0
	s.cursor = 0
	s.phase = PhaseActive
	s.reloadDraft()
	return nil
}

// reloadDraft recompõe o rascunho a partir do lead atual. Chamar com o lock.
func (s *Session) reloadDraft() {
	lead := s.queue[s.cursor]
	draft := WorkingDraft{
		Temperature: lead.Temperature,
		QuickNote:   lead.QuickNote,
		ScriptID:    lead.ScriptID,
	}
	if draft.ScriptID == "" || s.findOpener(draft.ScriptID) == nil {
		draft.ScriptID = s.defaultScriptID
	}
	s.draft = draft
}

func (s *Session) findOpener(id string) *entity.Script {
	for _, script := range s.openers {
		if script.ID == id {
			return script
		}
	}
	return nil
}

func (s *Session) Phase() SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) QueueSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// CurrentLead retorna uma cópia do lead no cursor (nil fora de ACTIVE).
func (s *Session) CurrentLead() *entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return nil
	}
	lead := *s.queue[s.cursor]
	return &lead
}

func (s *Session) Draft() WorkingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) Openers() []*entity.Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openers
}

func (s *Session) Objections() []*entity.Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objections
}

// Tick recalcula o tempo decorrido. Leitura pura, segura a qualquer momento.
func (s *Session) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Tick()
	return s.timer.ElapsedSeconds()
}

func (s *Session) SetTemperature(t entity.Temperature) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return &DomainError{Code: CodeInvalidTransition, Message: "sessão não está ativa"}
	}
	if !t.Valid() {
		return &DomainError{Code: CodeValidationError, Message: "temperatura inválida: " + string(t)}
	}
	s.draft.Temperature = t
	return nil
}

func (s *Session) SetNote(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return &DomainError{Code: CodeInvalidTransition, Message: "sessão não está ativa"}
	}
	s.draft.QuickNote = text
	return nil
}

// SetScript troca o script de abordagem atual. Objeções são material de
// consulta e não podem ser selecionadas.
func (s *Session) SetScript(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return &DomainError{Code: CodeInvalidTransition, Message: "sessão não está ativa"}
	}
	if s.findOpener(id) == nil {
		return &DomainError{Code: CodeScriptNotEligible, Message: "script não elegível como abordagem atual"}
	}
	s.draft.ScriptID = id
	return nil
}

// RenderCurrent renderiza o script selecionado para o lead no cursor. Sem
// script selecionado devolve um placeholder, nunca erro.
func (s *Session) RenderCurrent() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return ""
	}
	return s.renderCurrentLocked()
}

// renderCurrentLocked assume ACTIVE e o lock.
func (s *Session) renderCurrentLocked() string {
	script := s.findOpener(s.draft.ScriptID)
	if script == nil {
		return "Selecione um script..."
	}
	return RenderTemplate(script.Content, s.queue[s.cursor])
}

// RenderObjections renderiza o pool de objeções para o lead atual.
func (s *Session) RenderObjections() []RenderedScript {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return nil
	}
	return s.renderObjectionsLocked()
}

// renderObjectionsLocked assume ACTIVE e o lock.
func (s *Session) renderObjectionsLocked() []RenderedScript {
	lead := s.queue[s.cursor]
	rendered := make([]RenderedScript, 0, len(s.objections))
	for _, obj := range s.objections {
		rendered = append(rendered, RenderedScript{
			ID:      obj.ID,
			Title:   obj.Title,
			Type:    obj.Type,
			Content: RenderTemplate(obj.Content, lead),
		})
	}
	return rendered
}

// Resultados permitidos para uma ação de desfecho.
func allowedOutcome(status entity.LeadStatus) bool {
	switch status {
	case entity.StatusContacted, entity.StatusPending, entity.StatusNotInterested:
		return true
	}
	return false
}

// RecordOutcome grava o desfecho do lead atual e avança o cursor (ou encerra
// a sessão quando a fila acaba). A escrita é verificada: se a persistência
// falhar, cursor e fase ficam exatamente como estavam e o erro volta ao
// chamador para retry.
func (s *Session) RecordOutcome(ctx context.Context, status entity.LeadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return &DomainError{Code: CodeInvalidTransition, Message: "sessão não está ativa"}
	}
	if !allowedOutcome(status) {
		return &DomainError{
			Code:    CodeInvalidOutcome,
			Message: "desfecho inválido: " + string(status),
		}
	}
	if s.writePending {
		return &DomainError{Code: CodeWriteInFlight, Message: "gravação anterior ainda em andamento"}
	}

	now := s.now()
	updated := *s.queue[s.cursor]
	updated.Status = status
	updated.LastContactedAt = &now
	updated.ScriptID = s.draft.ScriptID
	updated.Temperature = s.draft.Temperature
	updated.QuickNote = s.draft.QuickNote

	// A escrita roda fora do lock para não segurar snapshots; writePending
	// barra qualquer outra transição até ela terminar.
	s.writePending = true
	s.mu.Unlock()
	err := s.leads.Save(ctx, &updated)
	s.mu.Lock()
	s.writePending = false
	if err != nil {
		return &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao gravar desfecho do lead: " + err.Error(),
			Err:     err,
		}
	}

	s.queue[s.cursor] = &updated
	s.actioned++

	s.publish(ctx, queue.ContactEventPayload{
		Kind:       queue.EventOutcome,
		LeadID:     updated.ID,
		LeadName:   updated.Name,
		Status:     string(status),
		ScriptID:   updated.ScriptID,
		QuickNote:  updated.QuickNote,
		OccurredAt: now,
	})

	if s.cursor < len(s.queue)-1 {
		s.cursor++
		s.reloadDraft()
	} else {
		s.finish(ctx)
	}

	return nil
}

// RecordTouch registra um toque passivo ("abri o Instagram desse lead") sem
// mexer em cursor, status ou contador.
func (s *Session) RecordTouch(ctx context.Context, channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return &DomainError{Code: CodeInvalidTransition, Message: "sessão não está ativa"}
	}
	if channel == "" {
		return &DomainError{Code: CodeValidationError, Message: "canal é obrigatório"}
	}
	if s.writePending {
		return &DomainError{Code: CodeWriteInFlight, Message: "gravação anterior ainda em andamento"}
	}

	updated := *s.queue[s.cursor]
	updated.LastAction = channel + " - Hoje"

	s.writePending = true
	s.mu.Unlock()
	err := s.leads.Save(ctx, &updated)
	s.mu.Lock()
	s.writePending = false
	if err != nil {
		return &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao gravar toque no lead: " + err.Error(),
			Err:     err,
		}
	}

	s.queue[s.cursor] = &updated

	s.publish(ctx, queue.ContactEventPayload{
		Kind:       queue.EventTouch,
		LeadID:     updated.ID,
		LeadName:   updated.Name,
		Channel:    channel,
		OccurredAt: s.now(),
	})

	return nil
}

// End encerra a sessão no cursor atual. Chamar de novo em SUMMARY é no-op.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseActive:
		if s.writePending {
			return &DomainError{Code: CodeWriteInFlight, Message: "gravação anterior ainda em andamento"}
		}
		s.finish(ctx)
		return nil
	case PhaseSummary:
		return nil
	default:
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("não é possível encerrar sessão em %s", s.phase),
		}
	}
}

// finish congela timer e contadores. Chamar com o lock.
func (s *Session) finish(ctx context.Context) {
	s.timer.Stop()
	s.phase = PhaseSummary

	s.publish(ctx, queue.ContactEventPayload{
		Kind:           queue.EventSessionFinished,
		OccurredAt:     s.now(),
		LeadsActioned:  s.actioned,
		ElapsedSeconds: s.timer.ElapsedSeconds(),
	})
}

// Summary só é válido depois que a sessão terminou.
func (s *Session) Summary() (SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSummary {
		return SessionSummary{}, &DomainError{
			Code:    CodeInvalidTransition,
			Message: "resumo disponível apenas após o fim da sessão",
		}
	}
	return SessionSummary{
		LeadsActioned:  s.actioned,
		ElapsedSeconds: s.timer.ElapsedSeconds(),
	}, nil
}

// publish envia eventos em best-effort: gravado no banco, falha de fila não
// desfaz a transição.
func (s *Session) publish(ctx context.Context, payload queue.ContactEventPayload) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishContactEvent(ctx, payload); err != nil {
		log.Printf("⚠️ Desfecho gravado, mas falha na fila de eventos: %v", err)
	}
}
