package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateProspectInput(input ProspectInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" && strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"first_name", "first or last name is required"})
	}
	if len(input.FirstName) > 200 {
		errors = append(errors, ValidationError{"first_name", "must not exceed 200 characters"})
	}
	if len(input.LastName) > 200 {
		errors = append(errors, ValidationError{"last_name", "must not exceed 200 characters"})
	}

	// Email do prospect é opcional, mas se vier tem que ser válido
	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	// Idem para o responsável — sem endereço válido não há como lembrar
	if strings.TrimSpace(input.AssignedToEmail) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(input.AssignedToEmail)); err != nil {
			errors = append(errors, ValidationError{"assigned_to_email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.FollowUpDate) != "" && !isValidDate(input.FollowUpDate) {
		errors = append(errors, ValidationError{"follow_up_date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// parseDatePtr converte "YYYY-MM-DD" em *time.Time (nil se vazio).
func parseDatePtr(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
