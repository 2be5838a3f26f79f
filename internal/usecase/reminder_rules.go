package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

// Janela de lembrete: hoje + 7 dias de calendário, INCLUSIVE nas duas pontas.
const ReminderWindowDays = 7

const (
	DigestSubject = "Follow-Up Digest: Overdue & Upcoming (7 days)"

	digestPreamble = "Here are your follow-ups that are overdue or due within the next 7 days:"
	digestFooter   = "— Client Prospect CRM"

	StatusOverdue = "OVERDUE"
)

// DueProspect é um prospect dentro da janela com o rótulo de status já resolvido.
type DueProspect struct {
	Prospect entity.Prospect
	Status   string
}

// DigestBatch agrupa os prospects de UM destinatário para virar UM email.
// Efêmero: montado a cada run e descartado depois do envio.
type DigestBatch struct {
	Recipient string
	Items     []DueProspect
}

// ShouldRun decide se o run de hoje acontece, dada a frequência configurada.
// Frequência desconhecida roda como daily (fail-open, ver ParseFrequency).
func ShouldRun(freq entity.Frequency, today time.Time) bool {
	switch freq {
	case entity.FrequencyOff:
		return false
	case entity.FrequencyWeekly:
		return today.Weekday() == time.Monday
	default:
		return true
	}
}

// SelectDue filtra os prospects vencidos ou com follow-up dentro da janela.
// A ordem de entrada (leitura do banco) é preservada na saída.
func SelectDue(rows []entity.Prospect, today time.Time) []DueProspect {
	windowEnd := today.AddDate(0, 0, ReminderWindowDays)

	var due []DueProspect
	for _, p := range rows {
		if !p.HasFollowUp() {
			continue
		}
		followUp := entity.DateOnly(*p.FollowUpDate)
		if followUp.After(windowEnd) {
			continue
		}

		// Follow-up de HOJE ainda não está vencido
		status := StatusOverdue
		if !followUp.Before(today) {
			status = "Due " + followUp.Format("2006-01-02")
		}

		due = append(due, DueProspect{Prospect: p, Status: status})
	}
	return due
}

// FilterUnreminded aplica o gate de uma-vez-por-dia: quem já recebeu lembrete
// HOJE fica de fora, independente de quantas vezes o run for disparado.
func FilterUnreminded(due []DueProspect, today time.Time) []DueProspect {
	var out []DueProspect
	for _, d := range due {
		if d.Prospect.LastRemindedOn != nil && entity.SameDay(*d.Prospect.LastRemindedOn, today) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// BatchByRecipient agrupa por responsável (igualdade exata pós-trim).
// Sem responsável = sem destino: o prospect fica fora do lote, sem erro.
// A ordem dos lotes segue a primeira aparição de cada destinatário.
func BatchByRecipient(due []DueProspect) []DigestBatch {
	index := make(map[string]int)
	var batches []DigestBatch

	for _, d := range due {
		recipient := strings.TrimSpace(d.Prospect.AssignedToEmail)
		if recipient == "" {
			continue
		}

		i, ok := index[recipient]
		if !ok {
			i = len(batches)
			index[recipient] = i
			batches = append(batches, DigestBatch{Recipient: recipient})
		}
		batches[i].Items = append(batches[i].Items, d)
	}
	return batches
}

// ComposeDigest monta o assunto e o corpo (texto puro) do email de um lote.
// Campo ausente vira segmento vazio na linha; nada de "null" vazando.
func ComposeDigest(batch DigestBatch) (subject, body string) {
	var b strings.Builder
	b.WriteString(digestPreamble)
	b.WriteString("\n\n")

	for _, item := range batch.Items {
		fmt.Fprintf(&b, "- %s %s @ %s  [%s]\n",
			item.Prospect.FirstName,
			item.Prospect.LastName,
			item.Prospect.Company,
			item.Status,
		)
	}

	b.WriteString("\n")
	b.WriteString(digestFooter)

	return DigestSubject, b.String()
}
