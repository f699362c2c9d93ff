package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier define o contrato com a camada de e-mail (SMTP hoje, poderia ser
// WhatsApp amanhã).
type Notifier interface {
	SendStaleLeadAlert(to, leadName string, status string, hoursSinceUpdate int64) error
	SendStatusChangeNotice(to, leadName, oldStatus, newStatus string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
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
			var payload LeadEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Evento %s para lead %s", payload.Event, payload.Name)

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao notificar: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload LeadEventPayload) error {
	// Sem corretor atribuído não há destinatário; ack e segue.
	if payload.AssignedTo == "" {
		log.Printf("⚠️ Lead %s sem corretor atribuído, notificação descartada", payload.LeadID)
		return nil
	}

	switch payload.Event {
	case EventStatusChanged:
		return w.Notifier.SendStatusChangeNotice(
			payload.AssignedTo, payload.Name, payload.OldStatus, payload.NewStatus)

	case EventStaleCritical:
		return w.Notifier.SendStaleLeadAlert(
			payload.AssignedTo, payload.Name, payload.Status, payload.HoursSinceUpdate)

	default:
		log.Printf("⚠️ Evento desconhecido: %s. Apenas logando.", payload.Event)
		// Retornamos nil para dar ACK e tirar essa mensagem da fila, já que não sabemos tratar
		return nil
	}
}
