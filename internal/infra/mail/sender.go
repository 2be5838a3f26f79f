package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

const defaultSendTimeout = 15 * time.Second

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Timeout:  defaultSendTimeout,
	}
}

// SendDigest envia o digest de follow-ups (texto puro, igual ao original).
func (s *EmailSender) SendDigest(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.send(m)
}

// SendFollowUpUpdated avisa o responsável que a data de follow-up mudou.
func (s *EmailSender) SendFollowUpUpdated(to, firstName, lastName, company, followUpDate string) error {
	if followUpDate == "" {
		followUpDate = "(removed)"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Follow-Up Updated: %s %s", firstName, lastName))
	m.SetBody("text/plain", fmt.Sprintf(
		"The follow-up for %s %s at %s has been updated to %s.",
		firstName, lastName, company, followUpDate,
	))

	return s.send(m)
}

// send aplica o timeout por fora: SMTP travado conta como falha de envio
// e cai no mesmo caminho de erro de qualquer outra falha.
func (s *EmailSender) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("erro ao enviar email SMTP: %w", err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("timeout ao enviar email SMTP (%s)", timeout)
	}
}
