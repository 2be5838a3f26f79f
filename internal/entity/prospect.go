package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Entidade: Prospect (um contato/lead de prospecção)
type Prospect struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Title           string `json:"title,omitempty"`
	Company         string `json:"company,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	Address         string `json:"address,omitempty"`
	Website         string `json:"website,omitempty"`
	AssignedToEmail string `json:"assigned_to_email,omitempty"`

	// Lista de clientes separada por vírgula ("WOEMA,NSSA,...")
	Clients string `json:"clients,omitempty"`
	Notes   string `json:"notes,omitempty"`

	// Datas de calendário (sem hora). Nil = sem follow-up / nunca lembrado.
	FollowUpDate   *time.Time `json:"follow_up_date,omitempty"`
	LastRemindedOn *time.Time `json:"last_reminded_on,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewProspect(firstName, lastName string) *Prospect {
	now := time.Now()
	return &Prospect{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasFollowUp retorna true se existe follow-up agendado.
// Sem follow_up_date o prospect nunca entra no digest.
func (p *Prospect) HasFollowUp() bool {
	return p.FollowUpDate != nil
}

type ProspectRepositoryInterface interface {

	// List retorna TODOS os prospects em ordem estável (ORDER BY id).
	// A ordem estável é obrigatória: o digest precisa ser determinístico.
	List(ctx context.Context) ([]Prospect, error)

	FindByID(ctx context.Context, id string) (*Prospect, error)
	Create(ctx context.Context, p *Prospect) error
	Update(ctx context.Context, p *Prospect) error
	Delete(ctx context.Context, id string) error

	// MarkReminded grava last_reminded_on = day para TODOS os ids de uma vez.
	// Um único UPDATE: ou marca o lote inteiro, ou nenhum.
	MarkReminded(ctx context.Context, ids []string, day time.Time) error
}
