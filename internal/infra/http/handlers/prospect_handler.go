package handlers

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/prospect-crm/internal/entity"
	"github.com/xavierca1/prospect-crm/internal/infra/http/middleware"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

type ProspectHandler struct {
	CreateUC *usecase.CreateProspectUseCase
	UpdateUC *usecase.UpdateProspectUseCase
	ImportUC *usecase.ImportProspectsUseCase
	Repo     entity.ProspectRepositoryInterface
}

func NewProspectHandler(
	createUC *usecase.CreateProspectUseCase,
	updateUC *usecase.UpdateProspectUseCase,
	importUC *usecase.ImportProspectsUseCase,
	repo entity.ProspectRepositoryInterface,
) *ProspectHandler {
	return &ProspectHandler{
		CreateUC: createUC,
		UpdateUC: updateUC,
		ImportUC: importUC,
		Repo:     repo,
	}
}

func (h *ProspectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProspectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	p, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProspectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	prospects, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "LIST_FAILED", "falha ao carregar prospects")
		return
	}

	writeJSON(w, http.StatusOK, prospects)
}

func (h *ProspectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "PROSPECT_NOT_FOUND", "prospect não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "GET_FAILED", "falha ao carregar prospect")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProspectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.ProspectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	p, err := h.UpdateUC.Execute(r.Context(), id, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProspectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "DELETE_FAILED", "falha ao excluir prospect")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleImport aceita o CSV no corpo (text/csv) ou como multipart "file".
func (h *ProspectHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body

	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	out, err := h.ImportUC.Execute(r.Context(), reader)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordProspectsImported(out.Imported)
	writeJSON(w, http.StatusOK, out)
}

func (h *ProspectHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	prospects, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EXPORT_FAILED", "falha ao carregar prospects")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="prospects.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"first_name", "last_name", "title", "company", "phone", "email",
		"address", "website", "assigned_to_email", "clients", "follow_up_date",
	})

	for _, p := range prospects {
		followUp := ""
		if p.FollowUpDate != nil {
			followUp = p.FollowUpDate.Format("2006-01-02")
		}
		cw.Write([]string{
			p.FirstName, p.LastName, p.Title, p.Company, p.Phone, p.Email,
			p.Address, p.Website, p.AssignedToEmail, p.Clients, followUp,
		})
	}
	cw.Flush()
}

// ---- helpers compartilhados pelos handlers ----

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr == usecase.ErrProspectNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, domainErr.Code, domainErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
