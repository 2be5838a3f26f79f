package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

type CreateProspectUseCase struct {
	Repo entity.ProspectRepositoryInterface
}

func NewCreateProspectUseCase(repo entity.ProspectRepositoryInterface) *CreateProspectUseCase {
	return &CreateProspectUseCase{Repo: repo}
}

func (uc *CreateProspectUseCase) Execute(ctx context.Context, input ProspectInput) (*entity.Prospect, error) {
	if errs := ValidateProspectInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: errs[0].Error()}
	}

	p := entity.NewProspect(strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
	p.Title = input.Title
	p.Company = input.Company
	p.Phone = input.Phone
	p.Email = strings.TrimSpace(input.Email)
	p.Address = input.Address
	p.Website = input.Website
	p.AssignedToEmail = strings.TrimSpace(input.AssignedToEmail)
	p.Clients = strings.Join(input.Clients, ",")
	p.Notes = input.Notes
	p.FollowUpDate = parseDatePtr(input.FollowUpDate)

	if err := uc.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
