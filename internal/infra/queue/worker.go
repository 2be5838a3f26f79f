package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpMailer define o contrato do envio de email de follow-up atualizado.
type FollowUpMailer interface {
	SendFollowUpUpdated(to, firstName, lastName, company, followUpDate string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  FollowUpMailer
}

func NewWorker(ch *amqp.Channel, mailer FollowUpMailer) *Worker {
	return &Worker{
		Channel: ch,
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
			var payload FollowUpUpdatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.Process(payload); err != nil {
				log.Printf("❌ [WORKER] Falha ao notificar %s: %s", payload.AssignedToEmail, err)
				d.Nack(false, false) // vai para a DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("👷 Worker de follow-up escutando a fila %s", queueName)
	<-forever
}

// Process envia o aviso de follow-up atualizado para o responsável.
func (w *Worker) Process(payload FollowUpUpdatedPayload) error {
	if payload.AssignedToEmail == "" {
		// Sem responsável não há quem avisar; descarta sem erro.
		log.Printf("⚠️ [WORKER] Prospect %s sem responsável, evento descartado", payload.ProspectID)
		return nil
	}

	log.Printf("📨 [WORKER] Avisando %s sobre follow-up de %s %s",
		payload.AssignedToEmail, payload.FirstName, payload.LastName)

	return w.Mailer.SendFollowUpUpdated(
		payload.AssignedToEmail,
		payload.FirstName,
		payload.LastName,
		payload.Company,
		payload.FollowUpDate,
	)
}
