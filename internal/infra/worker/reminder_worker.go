package worker

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xavierca1/prospect-crm/internal/infra/http/middleware"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

const DefaultSchedule = "0 8 * * *" // todo dia às 8h (hora local do CRM)

// ReminderWorker dispara o run de lembretes dentro do processo da API.
// O deploy também pode usar só o binário cmd/reminders via cron externo;
// rodar os dois é seguro por causa do gate de uma-vez-por-dia.
type ReminderWorker struct {
	uc       *usecase.RunRemindersUseCase
	schedule cron.Schedule
	loc      *time.Location
}

func NewReminderWorker(uc *usecase.RunRemindersUseCase, spec string, loc *time.Location) (*ReminderWorker, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}

	return &ReminderWorker{
		uc:       uc,
		schedule: schedule,
		loc:      loc,
	}, nil
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Printf("🕒 Reminder Worker iniciado (próximo disparo: %s)",
		w.schedule.Next(time.Now().In(w.loc)).Format(time.RFC3339))

	for {
		next := w.schedule.Next(time.Now().In(w.loc))
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("⚠️ Reminder Worker encerrado")
			return
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	out, err := w.uc.Execute(ctx)
	middleware.RecordRunReport(out, err)

	if err != nil {
		// Run falhou inteiro (leitura dos prospects). O próximo disparo tenta
		// de novo; nada foi marcado, nada foi perdido.
		log.Printf("❌ Run agendado falhou: %v", err)
	}
}
