package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

const (
	OutcomeSent       = "SENT"
	OutcomeSendFailed = "SEND_FAILED"
	OutcomeMarkFailed = "MARK_FAILED"

	markTimeout = 10 * time.Second
)

// RecipientOutcome é o resultado do digest de UM destinatário.
type RecipientOutcome struct {
	Recipient string `json:"recipient"`
	Prospects int    `json:"prospects"`
	Result    string `json:"result"` // SENT | SEND_FAILED | MARK_FAILED
	Error     string `json:"error,omitempty"`
}

// RunRemindersOutput é o relatório de um run. Serve para log operacional,
// nunca para controle de fluxo.
type RunRemindersOutput struct {
	Ran        bool               `json:"ran"`
	SkipReason string             `json:"skip_reason,omitempty"`
	Frequency  string             `json:"frequency"`
	Today      string             `json:"today"`
	DueCount   int                `json:"due_count"`
	Recipients []RecipientOutcome `json:"recipients"`
	Sent       int                `json:"sent"`
	Failed     int                `json:"failed"`
}

type RunRemindersUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	EmailService EmailService

	// Fuso fixo do run (o CRM opera em horário da costa leste).
	Location *time.Location

	// Relógio injetável: "hoje" é calculado UMA vez por run e passado
	// adiante; nenhum componente interno lê o relógio sozinho.
	Now func() time.Time
}

func NewRunRemindersUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	emailService EmailService,
	loc *time.Location,
) *RunRemindersUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &RunRemindersUseCase{
		ProspectRepo: prospectRepo,
		SettingsRepo: settingsRepo,
		EmailService: emailService,
		Location:     loc,
		Now:          time.Now,
	}
}

// Execute faz UMA passada: gate → load → select → batch → compose+dispatch.
// Sem estado entre invocações e sem retry interno; o retry é o próximo run
// (cron), que é seguro por causa do gate de uma-vez-por-dia.
//
// Erro só é retornado quando a leitura dos prospects falha (nada pode ser
// processado). Falha por destinatário fica isolada no relatório.
func (uc *RunRemindersUseCase) Execute(ctx context.Context) (*RunRemindersOutput, error) {
	today := entity.DateOnly(uc.Now().In(uc.Location))

	// Falha de leitura da config nunca derruba o run: default daily.
	freq := uc.SettingsRepo.GetReminderFrequency(ctx)

	out := &RunRemindersOutput{
		Frequency: string(freq),
		Today:     today.Format("2006-01-02"),
	}

	if !ShouldRun(freq, today) {
		out.SkipReason = skipReason(freq)
		log.Printf("💤 Lembretes pulados: %s", out.SkipReason)
		return out, nil
	}
	out.Ran = true

	rows, err := uc.ProspectRepo.List(ctx)
	if err != nil {
		log.Printf("❌ Falha ao carregar prospects, run abortado: %v", err)
		return out, fmt.Errorf("falha ao carregar prospects: %w", err)
	}

	due := SelectDue(rows, today)
	out.DueCount = len(due)
	if len(due) == 0 {
		log.Println("✅ Nenhum follow-up vencido ou próximo. Nada a enviar.")
		return out, nil
	}

	batches := BatchByRecipient(FilterUnreminded(due, today))

	for _, batch := range batches {
		out.Recipients = append(out.Recipients, uc.dispatch(ctx, batch, today))
	}

	for _, r := range out.Recipients {
		if r.Result == OutcomeSent {
			out.Sent++
		} else {
			out.Failed++
		}
	}

	log.Printf("📬 Run de lembretes concluído: %d enviado(s), %d falha(s), %d destinatário(s)",
		out.Sent, out.Failed, len(out.Recipients))
	return out, nil
}

// dispatch envia o digest de um destinatário e, SÓ depois do envio, marca o
// lote inteiro como lembrado hoje.
//
// Ordem deliberada (at-least-once): envio falhou → nada marcado, o próximo
// run reenvia. Envio ok mas marcação falhou → próximo run manda duplicata.
// Duplicata ocasional é o modo de falha aceito; lembrete perdido não é.
func (uc *RunRemindersUseCase) dispatch(ctx context.Context, batch DigestBatch, today time.Time) RecipientOutcome {
	outcome := RecipientOutcome{
		Recipient: batch.Recipient,
		Prospects: len(batch.Items),
	}

	subject, body := ComposeDigest(batch)

	if err := uc.EmailService.SendDigest(batch.Recipient, subject, body); err != nil {
		log.Printf("❌ Falha ao enviar digest para %s: %v", batch.Recipient, err)
		outcome.Result = OutcomeSendFailed
		outcome.Error = err.Error()
		return outcome
	}
	log.Printf("📧 Digest enviado para %s (%d prospect(s))", batch.Recipient, len(batch.Items))

	ids := make([]string, 0, len(batch.Items))
	for _, it := range batch.Items {
		if it.Prospect.ID != "" {
			ids = append(ids, it.Prospect.ID)
		}
	}

	markCtx, cancel := context.WithTimeout(ctx, markTimeout)
	defer cancel()

	if err := uc.ProspectRepo.MarkReminded(markCtx, ids, today); err != nil {
		// Log distinto do erro de envio: isso significa duplicata futura.
		log.Printf("⚠️ Digest ENVIADO para %s mas last_reminded_on não foi gravado: %v (haverá reenvio no próximo run)",
			batch.Recipient, err)
		outcome.Result = OutcomeMarkFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Result = OutcomeSent
	return outcome
}

func skipReason(freq entity.Frequency) string {
	if freq == entity.FrequencyOff {
		return "reminders desligados pelo admin"
	}
	return "frequência weekly só dispara na segunda-feira"
}
