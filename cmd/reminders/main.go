// Disparo avulso dos lembretes, independente da API.
// Agendar via cron, GitHub Actions ou scheduler da plataforma (diário/semanal);
// a frequência configurada decide se a invocação faz alguma coisa.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/prospect-crm/internal/infra/database"
	"github.com/xavierca1/prospect-crm/internal/infra/mail"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(getenv("CRM_TIMEZONE", "America/New_York"))
	if err != nil {
		log.Fatalf("fuso inválido: %v", err)
	}

	prospectRepo := database.NewProspectRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	emailPort, _ := strconv.Atoi(getenv("EMAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("EMAIL_HOST"), emailPort, os.Getenv("EMAIL_USER"), os.Getenv("EMAIL_PASSWORD"),
	)

	uc := usecase.NewRunRemindersUseCase(prospectRepo, settingsRepo, mailSender, loc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out, err := uc.Execute(ctx)
	if err != nil {
		// Falha de leitura: zero processado, saída limpa. O próximo disparo
		// do cron tenta de novo; nenhum lembrete foi perdido.
		log.Printf("❌ Run abortado: %v", err)
		os.Exit(0)
	}

	if !out.Ran {
		log.Printf("💤 Nada a fazer (%s)", out.SkipReason)
		return
	}
	log.Printf("✅ %d digest(s) enviados, %d falha(s)", out.Sent, out.Failed)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
