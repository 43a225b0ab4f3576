package worker

import (
	"context"
	"log"
	"time"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/infra/http/middleware"
)

// FollowUpWorker varre periodicamente os leads em negociação sem contato
// recente e publica o tamanho do backlog. A fila de sessão é montada sob
// demanda; aqui é só visibilidade.
type FollowUpWorker struct {
	leads        entity.LeadRepositoryInterface
	tickInterval time.Duration
}

func NewFollowUpWorker(leads entity.LeadRepositoryInterface) *FollowUpWorker {
	return &FollowUpWorker{
		leads:        leads,
		tickInterval: 15 * time.Minute,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Println("🕒 Follow-up Worker iniciado (janela de 48h)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Follow-up Worker encerrado")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *FollowUpWorker) scan(ctx context.Context) {
	overdue, err := w.leads.ListOverdueFollowUps(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Erro ao buscar follow-ups atrasados: %v", err)
		return
	}

	middleware.SetFollowUpBacklog(len(overdue))

	if len(overdue) == 0 {
		return
	}

	oldest := overdue[0]
	elapsed := time.Since(*oldest.LastContactedAt)
	log.Printf("⏱️ %d follow-up(s) atrasado(s). Mais antigo: %s (%s sem contato)",
		len(overdue), oldest.Name, elapsed.Round(time.Hour))
}
