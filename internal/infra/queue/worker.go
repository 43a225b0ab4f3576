package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lucasferraz/prospecta/internal/entity"
)

// SummaryMailer envia o e-mail de fim de sessão (gomail por baixo).
type SummaryMailer interface {
	SendSessionSummary(leadsActioned, elapsedSeconds int) error
}

// Worker consome os eventos de contato publicados pela sessão e materializa
// os efeitos secundários: histórico do lead e e-mail de resumo.
type Worker struct {
	Channel *amqp.Channel
	Leads   entity.LeadRepositoryInterface
	Mailer  SummaryMailer
}

func NewWorker(ch *amqp.Channel, leads entity.LeadRepositoryInterface, mailer SummaryMailer) *Worker {
	return &Worker{
		Channel: ch,
		Leads:   leads,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ContactEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Evento %s recebido (lead: %s)", payload.Kind, payload.LeadName)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao processar evento: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ContactEventPayload) error {
	switch payload.Kind {
	case EventOutcome:
		item := entity.HistoryItem{
			Date:    payload.OccurredAt,
			Type:    entity.HistoryStatusChange,
			Content: entity.LeadStatus(payload.Status).Label(),
		}
		if err := w.Leads.AppendHistory(ctx, payload.LeadID, item); err != nil {
			return err
		}
		if payload.QuickNote != "" {
			note := entity.HistoryItem{
				Date:    payload.OccurredAt,
				Type:    entity.HistoryNote,
				Content: payload.QuickNote,
			}
			return w.Leads.AppendHistory(ctx, payload.LeadID, note)
		}
		return nil

	case EventTouch:
		item := entity.HistoryItem{
			Date:    payload.OccurredAt,
			Type:    entity.HistoryContact,
			Content: payload.Channel + " - Hoje",
		}
		return w.Leads.AppendHistory(ctx, payload.LeadID, item)

	case EventSessionFinished:
		if w.Mailer == nil {
			return nil
		}
		log.Printf("📧 Enviando resumo da sessão: %d leads em %ds", payload.LeadsActioned, payload.ElapsedSeconds)
		return w.Mailer.SendSessionSummary(payload.LeadsActioned, payload.ElapsedSeconds)

	default:
		log.Printf("⚠️ Evento desconhecido: %s. Apenas logando.", payload.Kind)
		// ACK mesmo assim para não travar a fila com evento que não sabemos tratar
		return nil
	}
}
