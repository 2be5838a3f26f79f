package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/prospect-crm/internal/entity"
	"github.com/xavierca1/prospect-crm/internal/infra/queue"
)

type UpdateProspectUseCase struct {
	Repo  entity.ProspectRepositoryInterface
	Queue QueueProducerInterface
	Now   func() time.Time
}

func NewUpdateProspectUseCase(repo entity.ProspectRepositoryInterface, producer QueueProducerInterface) *UpdateProspectUseCase {
	return &UpdateProspectUseCase{
		Repo:  repo,
		Queue: producer,
		Now:   time.Now,
	}
}

func (uc *UpdateProspectUseCase) Execute(ctx context.Context, id string, input ProspectInput) (*entity.Prospect, error) {
	if errs := ValidateProspectInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: errs[0].Error()}
	}

	current, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProspectNotFound
		}
		return nil, err
	}

	oldFollowUp := current.FollowUpDate

	current.FirstName = strings.TrimSpace(input.FirstName)
	current.LastName = strings.TrimSpace(input.LastName)
	current.Title = input.Title
	current.Company = input.Company
	current.Phone = input.Phone
	current.Email = strings.TrimSpace(input.Email)
	current.Address = input.Address
	current.Website = input.Website
	current.AssignedToEmail = strings.TrimSpace(input.AssignedToEmail)
	current.Clients = strings.Join(input.Clients, ",")
	current.FollowUpDate = parseDatePtr(input.FollowUpDate)
	current.UpdatedAt = uc.Now()

	// Notas nunca sobrescrevem: nota nova é anexada com prefixo de data,
	// igual ao formulário de edição original.
	if strings.TrimSpace(input.Notes) != "" {
		today := entity.DateOnly(uc.Now()).Format("2006-01-02")
		current.Notes = current.Notes + fmt.Sprintf("[%s] %s", today, input.Notes)
	}

	if err := uc.Repo.Update(ctx, current); err != nil {
		return nil, err
	}

	// Follow-up mudou? Avisa o responsável via fila (o worker manda o email).
	// Best-effort: falha de publicação não desfaz o update.
	if uc.Queue != nil && followUpChanged(oldFollowUp, current.FollowUpDate) && current.AssignedToEmail != "" {
		payload := queue.FollowUpUpdatedPayload{
			ProspectID:      current.ID,
			FirstName:       current.FirstName,
			LastName:        current.LastName,
			Company:         current.Company,
			AssignedToEmail: current.AssignedToEmail,
		}
		if current.FollowUpDate != nil {
			payload.FollowUpDate = entity.DateOnly(*current.FollowUpDate).Format("2006-01-02")
		}
		if err := uc.Queue.PublishFollowUpUpdated(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar evento de follow-up atualizado (%s): %v", current.ID, err)
		}
	}

	return current, nil
}

func followUpChanged(old, new *time.Time) bool {
	if old == nil && new == nil {
		return false
	}
	if old == nil || new == nil {
		return true
	}
	return !entity.SameDay(*old, *new)
}
