package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/infra/queue"
)

func sessionFixtureScripts() []*entity.Script {
	return []*entity.Script{
		{ID: "s-opener", Title: "Abertura Curta", Type: entity.ScriptShortOpener, Content: "Oi [name]!", IsDefault: true},
		{ID: "s-followup", Title: "Follow-up", Type: entity.ScriptFollowUp, Content: "E aí [name], pensou na proposta?"},
		{ID: "s-price", Title: "Tá caro", Type: entity.ScriptObjectionPrice, Content: "[name], qualidade tem preço."},
	}
}

func buildTestSession(t *testing.T, leads, overdue []*entity.Lead) (*Session, *MockLeadRepository, *MockEventPublisher) {
	t.Helper()

	leadRepo := new(MockLeadRepository)
	scriptRepo := new(MockScriptRepository)
	publisher := new(MockEventPublisher)

	leadRepo.On("List", mock.Anything).Return(leads, nil)
	leadRepo.On("ListOverdueFollowUps", mock.Anything, mock.Anything).Return(overdue, nil)
	scriptRepo.On("List", mock.Anything).Return(sessionFixtureScripts(), nil)

	engine := NewSessionEngine(leadRepo, scriptRepo, publisher)
	engine.Now = func() time.Time {
		return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	}

	session, err := engine.BuildSession(context.Background())
	assert.NoError(t, err)

	return session, leadRepo, publisher
}

func TestBuildSessionEmptyQueue(t *testing.T) {
	session, _, _ := buildTestSession(t, nil, nil)

	assert.Equal(t, PhaseEmpty, session.Phase())
	assert.Equal(t, 0, session.QueueSize())

	// Sem fila não tem o que iniciar.
	err := session.Start()
	assert.Error(t, err)
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}

func TestBuildSessionStartsIdle(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.Equal(t, PhaseIdle, session.Phase())
	assert.Equal(t, 1, session.QueueSize())
	assert.Nil(t, session.CurrentLead())
}

func TestStartLoadsFirstLeadAndDefaultScript(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
	}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.NoError(t, session.Start())
	assert.Equal(t, PhaseActive, session.Phase())
	assert.Equal(t, "a", session.CurrentLead().ID)
	assert.Equal(t, "s-opener", session.Draft().ScriptID)
	assert.Equal(t, "Oi Lead a!", session.RenderCurrent())
}

func TestStartTwiceFails(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.NoError(t, session.Start())
	err := session.Start()
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}

func TestRecordOutcomeAdvancesCursor(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
	}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.SetTemperature(entity.TemperatureHot))
	assert.NoError(t, session.SetNote("respondeu rápido"))

	err := session.RecordOutcome(context.Background(), entity.StatusContacted)
	assert.NoError(t, err)

	assert.Equal(t, 1, session.Cursor())
	assert.Equal(t, "b", session.CurrentLead().ID)

	// O lead gravado carrega o rascunho e o novo status.
	saved := leadRepo.Calls[len(leadRepo.Calls)-1].Arguments.Get(1).(*entity.Lead)
	assert.Equal(t, "a", saved.ID)
	assert.Equal(t, entity.StatusContacted, saved.Status)
	assert.Equal(t, entity.TemperatureHot, saved.Temperature)
	assert.Equal(t, "respondeu rápido", saved.QuickNote)
	assert.NotNil(t, saved.LastContactedAt)
}

// O rascunho do lead anterior não vaza: cada avanço recompõe do lead novo.
func TestDraftResetsOnAdvance(t *testing.T) {
	leadB := leadWithStatus("b", entity.StatusNew)
	leadB.QuickNote = "nota antiga do B"
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew), leadB}

	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.SetNote("nota do A"))
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusPending))

	draft := session.Draft()
	assert.Equal(t, "nota antiga do B", draft.QuickNote)
	assert.Equal(t, entity.TemperatureNone, draft.Temperature)
}

func TestRecordOutcomeLastLeadEndsSession(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusNotInterested))

	assert.Equal(t, PhaseSummary, session.Phase())

	summary, err := session.Summary()
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.LeadsActioned)
}

// Persistência falhou: cursor e fase ficam intactos para o operador tentar
// de novo, e nenhum evento é publicado.
func TestRecordOutcomePersistenceFailureKeepsState(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
	}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("conexão caiu"))

	assert.NoError(t, session.Start())
	err := session.RecordOutcome(context.Background(), entity.StatusContacted)

	assert.Error(t, err)
	assert.Equal(t, CodePersistenceFailure, ErrorCode(err))
	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, PhaseActive, session.Phase())
	assert.Equal(t, 0, session.Cursor())
	assert.Equal(t, entity.StatusNew, session.CurrentLead().Status)
	publisher.AssertNotCalled(t, "PublishContactEvent", mock.Anything, mock.Anything)
}

func TestRecordOutcomeRetryAfterFailure(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.Error(t, session.RecordOutcome(context.Background(), entity.StatusContacted))
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusContacted))

	assert.Equal(t, PhaseSummary, session.Phase())
}

func TestRecordOutcomeInvalidStatus(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.NoError(t, session.Start())

	for _, status := range []entity.LeadStatus{
		entity.StatusClosed,
		entity.StatusNew,
		entity.StatusArchived,
		entity.LeadStatus("FECHOU_NA_HORA"),
	} {
		err := session.RecordOutcome(context.Background(), status)
		assert.Equal(t, CodeInvalidOutcome, ErrorCode(err), "status %s", status)
	}
}

func TestRecordTouchDoesNotAdvance(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
	}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.RecordTouch(context.Background(), "Instagram"))

	assert.Equal(t, 0, session.Cursor())
	assert.Equal(t, "Instagram - Hoje", session.CurrentLead().LastAction)
	assert.Equal(t, entity.StatusNew, session.CurrentLead().Status)

	summaryBefore, err := session.Summary()
	assert.Error(t, err)
	assert.Zero(t, summaryBefore.LeadsActioned)
}

// Falha na fila de eventos não desfaz o desfecho já gravado no banco.
func TestRecordOutcomeQueueFailureTolerated(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(errors.New("broker fora"))

	assert.NoError(t, session.Start())
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusContacted))
	assert.Equal(t, PhaseSummary, session.Phase())
}

func TestSetScriptRejectsObjection(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.NoError(t, session.Start())

	err := session.SetScript("s-price")
	assert.Equal(t, CodeScriptNotEligible, ErrorCode(err))

	err = session.SetScript("inexistente")
	assert.Equal(t, CodeScriptNotEligible, ErrorCode(err))

	assert.NoError(t, session.SetScript("s-followup"))
	assert.Equal(t, "s-followup", session.Draft().ScriptID)
}

func TestRenderObjectionsForCurrentLead(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.NoError(t, session.Start())

	objections := session.RenderObjections()
	assert.Len(t, objections, 1)
	assert.Equal(t, "s-price", objections[0].ID)
	assert.Equal(t, "Lead a, qualidade tem preço.", objections[0].Content)
}

func TestDraftEditsRequireActiveSession(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	assert.Equal(t, CodeInvalidTransition, ErrorCode(session.SetNote("cedo demais")))
	assert.Equal(t, CodeInvalidTransition, ErrorCode(session.SetTemperature(entity.TemperatureHot)))
	assert.Equal(t, CodeInvalidTransition, ErrorCode(session.SetScript("s-opener")))
	assert.Equal(t, CodeInvalidTransition, ErrorCode(session.RecordTouch(context.Background(), "Instagram")))
}

func TestEndFromActiveDiscardsRemaining(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
		leadWithStatus("c", entity.StatusNew),
	}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusContacted))
	assert.NoError(t, session.End(context.Background()))

	assert.Equal(t, PhaseSummary, session.Phase())
	summary, err := session.Summary()
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.LeadsActioned)

	// Encerrar de novo é no-op.
	assert.NoError(t, session.End(context.Background()))
}

func TestEndFromIdleFails(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, _, _ := buildTestSession(t, leads, nil)

	err := session.End(context.Background())
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}

func TestSessionFinishedEventCarriesTotals(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	var finished queue.ContactEventPayload
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(1).(queue.ContactEventPayload)
		if payload.Kind == queue.EventSessionFinished {
			finished = payload
		}
	}).Return(nil)

	assert.NoError(t, session.Start())
	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusContacted))

	assert.Equal(t, queue.EventSessionFinished, finished.Kind)
	assert.Equal(t, 1, finished.LeadsActioned)
}

// Consultas de estado durante o desfecho do último lead nunca veem uma
// sessão ativa sem lead corrente.
func TestSnapshotConsistentDuringFinalOutcome(t *testing.T) {
	leads := []*entity.Lead{leadWithStatus("a", entity.StatusNew)}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				view := session.Snapshot()
				if view.Phase == PhaseActive {
					assert.NotNil(t, view.CurrentLead)
					assert.NotNil(t, view.Draft)
				}
			}
		}()
	}

	assert.NoError(t, session.RecordOutcome(context.Background(), entity.StatusContacted))
	close(stop)
	wg.Wait()

	assert.Equal(t, PhaseSummary, session.Phase())
}

// Enquanto uma gravação está em voo, desfecho, toque e encerramento
// concorrentes são rejeitados em vez de pisar no estado.
func TestWriteInFlightRejectsConcurrentActions(t *testing.T) {
	leads := []*entity.Lead{
		leadWithStatus("a", entity.StatusNew),
		leadWithStatus("b", entity.StatusNew),
	}
	session, leadRepo, publisher := buildTestSession(t, leads, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	leadRepo.On("Save", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(nil).Once()
	leadRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishContactEvent", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, session.Start())

	first := make(chan error, 1)
	go func() {
		first <- session.RecordOutcome(context.Background(), entity.StatusContacted)
	}()
	<-entered

	assert.Equal(t, CodeWriteInFlight, ErrorCode(session.RecordOutcome(context.Background(), entity.StatusContacted)))
	assert.Equal(t, CodeWriteInFlight, ErrorCode(session.RecordTouch(context.Background(), "Instagram")))
	assert.Equal(t, CodeWriteInFlight, ErrorCode(session.End(context.Background())))

	close(release)
	assert.NoError(t, <-first)
	assert.Equal(t, 1, session.Cursor())
	assert.Equal(t, "b", session.CurrentLead().ID)
}

func TestQueueOverdueComesFirstInSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	overdueLead := contactedAgo("overdue", entity.StatusInNegotiation, 72*time.Hour, now)
	newLead := leadWithStatus("new", entity.StatusNew)

	session, _, _ := buildTestSession(t, []*entity.Lead{newLead, overdueLead}, []*entity.Lead{overdueLead})

	assert.NoError(t, session.Start())
	assert.Equal(t, "overdue", session.CurrentLead().ID)
}
