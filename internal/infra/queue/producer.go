package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Tipos de evento que circulam na fila de leads.
const (
	EventStatusChanged = "LEAD_STATUS_CHANGED"
	EventStaleCritical = "LEAD_STALE_CRITICAL"
)

type LeadEventPayload struct {
	Event        string `json:"event"`
	LeadID       string `json:"lead_id"`
	RealEstateID string `json:"real_estate_id"`

	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`

	// Presentes em LEAD_STATUS_CHANGED
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`

	// Presentes em LEAD_STALE_CRITICAL
	Status           string `json:"status,omitempty"`
	HoursSinceUpdate int64  `json:"hours_since_update,omitempty"`
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

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
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
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
