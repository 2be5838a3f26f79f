package usecase

type ProspectInput struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Address         string   `json:"address"`
	Website         string   `json:"website"`
	AssignedToEmail string   `json:"assigned_to_email"`
	Clients         []string `json:"clients"`

	// "YYYY-MM-DD"; vazio = sem follow-up agendado
	FollowUpDate string `json:"follow_up_date"`

	// No update as notas novas são ANEXADAS com prefixo de data,
	// nunca sobrescrevem o histórico.
	Notes string `json:"notes"`
}

type ImportProspectsOutput struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
