package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

const reminderFrequencyKey = "reminder_frequency"

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// GetReminderFrequency lê a frequência do app_settings.
// Linha ausente OU banco fora do ar = "daily". Lembrete parado por erro de
// config é pior do que um check a mais, então aqui nunca propaga erro.
func (r *SettingsRepository) GetReminderFrequency(ctx context.Context) entity.Frequency {
	query := `SELECT value FROM app_settings WHERE key = $1`

	var raw string
	err := r.DB.QueryRowContext(ctx, query, reminderFrequencyKey).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("⚠️ Falha ao ler reminder_frequency, assumindo daily: %v", err)
		}
		return entity.FrequencyDaily
	}

	return entity.ParseFrequency(raw)
}

func (r *SettingsRepository) SetReminderFrequency(ctx context.Context, f entity.Frequency) error {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value
	`

	_, err := r.DB.ExecContext(ctx, query, reminderFrequencyKey, string(f))
	return err
}
