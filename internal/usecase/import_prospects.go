package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xavierca1/prospect-crm/internal/entity"
)

type ImportProspectsUseCase struct {
	Repo entity.ProspectRepositoryInterface
}

func NewImportProspectsUseCase(repo entity.ProspectRepositoryInterface) *ImportProspectsUseCase {
	return &ImportProspectsUseCase{Repo: repo}
}

// Execute importa um CSV com header. Colunas mapeadas pelo nome; colunas
// desconhecidas são ignoradas e a coluna "notes" é descartada de propósito
// (upload nunca injeta histórico de notas, igual ao comportamento original).
// Linha inválida vira erro no relatório e NÃO aborta o restante do arquivo.
func (uc *ImportProspectsUseCase) Execute(ctx context.Context, r io.Reader) (*ImportProspectsOutput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &DomainError{Code: "INVALID_CSV", Message: "arquivo CSV vazio ou ilegível"}
	}

	col := make(map[string]int)
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := &ImportProspectsOutput{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			out.Skipped++
			out.Errors = append(out.Errors, fmt.Sprintf("linha %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		input := ProspectInput{
			FirstName:       field("first_name"),
			LastName:        field("last_name"),
			Title:           field("title"),
			Company:         field("company"),
			Phone:           field("phone"),
			Email:           field("email"),
			Address:         field("address"),
			Website:         field("website"),
			AssignedToEmail: field("assigned_to_email"),
			FollowUpDate:    field("follow_up_date"),
		}
		if clients := field("clients"); clients != "" {
			input.Clients = strings.Split(clients, ",")
		}

		if errs := ValidateProspectInput(input); len(errs) > 0 {
			out.Skipped++
			out.Errors = append(out.Errors, fmt.Sprintf("linha %d: %s", line, errs[0].Error()))
			continue
		}

		p := entity.NewProspect(input.FirstName, input.LastName)
		p.Title = input.Title
		p.Company = input.Company
		p.Phone = input.Phone
		p.Email = input.Email
		p.Address = input.Address
		p.Website = input.Website
		p.AssignedToEmail = input.AssignedToEmail
		p.Clients = strings.Join(input.Clients, ",")
		p.FollowUpDate = parseDatePtr(input.FollowUpDate)

		if err := uc.Repo.Create(ctx, p); err != nil {
			out.Skipped++
			out.Errors = append(out.Errors, fmt.Sprintf("linha %d: %v", line, err))
			continue
		}
		out.Imported++
	}

	return out, nil
}
