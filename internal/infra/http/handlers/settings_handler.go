package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

type SettingsHandler struct {
	Repo entity.SettingsRepositoryInterface
}

func NewSettingsHandler(repo entity.SettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{Repo: repo}
}

type frequencyBody struct {
	Frequency string `json:"frequency"`
}

func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	freq := h.Repo.GetReminderFrequency(r.Context())
	writeJSON(w, http.StatusOK, frequencyBody{Frequency: string(freq)})
}

func (h *SettingsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var body frequencyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	// Aqui o valor é validado de verdade: o fail-open do ParseFrequency é
	// para leitura em runtime, não para o admin gravar qualquer coisa.
	raw := strings.ToLower(strings.TrimSpace(body.Frequency))
	switch entity.Frequency(raw) {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyOff:
	default:
		writeError(w, http.StatusBadRequest, "INVALID_FREQUENCY", "frequency deve ser daily, weekly ou off")
		return
	}

	if err := h.Repo.SetReminderFrequency(r.Context(), entity.Frequency(raw)); err != nil {
		writeError(w, http.StatusInternalServerError, "SETTINGS_WRITE_FAILED", "falha ao gravar configuração")
		return
	}

	writeJSON(w, http.StatusOK, frequencyBody{Frequency: raw})
}
