package mail

import "time"

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// Limite do envio inteiro (dial + auth + send). gomail não expõe
	// timeout próprio, então o sender impõe um por cima.
	Timeout time.Duration
}
