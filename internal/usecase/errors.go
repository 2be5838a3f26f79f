package usecase

// Erros de negócio (viram 4xx) vs erros técnicos (viram 5xx).

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

var ErrProspectNotFound = &DomainError{Code: "PROSPECT_NOT_FOUND", Message: "prospect não encontrado"}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
