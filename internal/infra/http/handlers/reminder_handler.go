package handlers

import (
	"net/http"
	"time"

	"github.com/xavierca1/prospect-crm/internal/entity"
	"github.com/xavierca1/prospect-crm/internal/infra/http/middleware"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

type ReminderHandler struct {
	RunUC       *usecase.RunRemindersUseCase
	Repo        entity.ProspectRepositoryInterface
	rateLimiter *RateLimiter
}

func NewReminderHandler(runUC *usecase.RunRemindersUseCase, repo entity.ProspectRepositoryInterface) *ReminderHandler {
	return &ReminderHandler{
		RunUC:       runUC,
		Repo:        repo,
		rateLimiter: NewRateLimiter(3, time.Minute), // gatilho manual, 3 req/min por IP
	}
}

// HandleRun dispara o run manualmente (retry de operador, teste de config).
// Seguro de repetir: o gate de uma-vez-por-dia impede digest duplicado.
func (h *ReminderHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	out, err := h.RunUC.Execute(r.Context())
	middleware.RecordRunReport(out, err)

	if err != nil {
		// Leitura dos prospects falhou: nada processado, mas o relatório sai.
		writeJSON(w, http.StatusBadGateway, out)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// HandleDueList devolve a lista "vencidos + próximos 7 dias" para a UI.
// Sem o gate de uma-vez-por-dia: a tela sempre mostra tudo que está na janela.
func (h *ReminderHandler) HandleDueList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", "falha ao carregar prospects")
		return
	}

	today := entity.DateOnly(h.RunUC.Now().In(h.RunUC.Location))
	due := usecase.SelectDue(rows, today)

	type dueRow struct {
		Prospect entity.Prospect `json:"prospect"`
		Status   string          `json:"status"`
	}

	out := make([]dueRow, 0, len(due))
	for _, d := range due {
		out = append(out, dueRow{Prospect: d.Prospect, Status: d.Status})
	}

	writeJSON(w, http.StatusOK, out)
}
