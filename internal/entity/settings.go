package entity

import (
	"context"
	"strings"
)

// Frequency controla a cadência dos lembretes (configurado pelo admin).
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyOff    Frequency = "off"
)

// ParseFrequency normaliza o valor vindo do banco.
// Valor desconhecido vira "daily" de propósito: um check extra é barato,
// desligar todos os lembretes silenciosamente é caro.
func ParseFrequency(raw string) Frequency {
	switch Frequency(strings.ToLower(strings.TrimSpace(raw))) {
	case FrequencyWeekly:
		return FrequencyWeekly
	case FrequencyOff:
		return FrequencyOff
	default:
		return FrequencyDaily
	}
}

type SettingsRepositoryInterface interface {

	// GetReminderFrequency lê a frequência atual. Ausência ou erro de leitura
	// resultam em "daily" (nunca é fatal para o run).
	GetReminderFrequency(ctx context.Context) Frequency

	SetReminderFrequency(ctx context.Context, f Frequency) error
}
