package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Tipos de evento publicados pela sessão de prospecção.
const (
	EventOutcome         = "OUTCOME"
	EventTouch           = "TOUCH"
	EventSessionFinished = "SESSION_FINISHED"
)

// ContactEventPayload carrega tudo que o worker precisa sem reconsultar o
// banco: histórico do lead e e-mail de resumo são montados só com isso.
type ContactEventPayload struct {
	Kind       string    `json:"kind"`
	LeadID     string    `json:"lead_id,omitempty"`
	LeadName   string    `json:"lead_name,omitempty"`
	Status     string    `json:"status,omitempty"`
	Channel    string    `json:"channel,omitempty"`
	ScriptID   string    `json:"script_id,omitempty"`
	QuickNote  string    `json:"quick_note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`

	// Preenchidos apenas em SESSION_FINISHED
	LeadsActioned  int `json:"leads_actioned,omitempty"`
	ElapsedSeconds int `json:"elapsed_seconds,omitempty"`
}

type ContactEventPublisherInterface interface {
	PublishContactEvent(ctx context.Context, payload ContactEventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishContactEvent(ctx context.Context, payload ContactEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
