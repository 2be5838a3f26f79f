package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/prospect-crm/internal/infra/database"
	"github.com/xavierca1/prospect-crm/internal/infra/http/handlers"
	"github.com/xavierca1/prospect-crm/internal/infra/http/middleware"
	"github.com/xavierca1/prospect-crm/internal/infra/mail"
	"github.com/xavierca1/prospect-crm/internal/infra/queue"
	"github.com/xavierca1/prospect-crm/internal/infra/worker"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "user"),
		getenv("RABBITMQ_PASS", "password"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// O CRM opera no fuso da costa leste; "hoje" do run inteiro vem daqui.
	loc, err := time.LoadLocation(getenv("CRM_TIMEZONE", "America/New_York"))
	if err != nil {
		log.Fatalf("fuso inválido: %v", err)
	}

	// 1. Repositórios
	prospectRepo := database.NewProspectRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// 2. Adapters
	emailPort, _ := strconv.Atoi(getenv("EMAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("EMAIL_HOST"), emailPort, os.Getenv("EMAIL_USER"), os.Getenv("EMAIL_PASSWORD"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 3. Worker da fila (consome eventos de follow-up atualizado e avisa o responsável)
	queueWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go queueWorker.Start(queue.QueueName)

	// 4. UseCases
	runRemindersUC := usecase.NewRunRemindersUseCase(prospectRepo, settingsRepo, mailSender, loc)
	createProspectUC := usecase.NewCreateProspectUseCase(prospectRepo)
	updateProspectUC := usecase.NewUpdateProspectUseCase(prospectRepo, producer)
	importProspectsUC := usecase.NewImportProspectsUseCase(prospectRepo)

	// 5. Worker agendado (disparo interno; cron externo via cmd/reminders também funciona)
	reminderWorker, err := worker.NewReminderWorker(runRemindersUC, os.Getenv("REMINDER_CRON"), loc)
	if err != nil {
		log.Fatalf("cron spec inválida: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reminderWorker.Start(ctx)

	// 6. Handlers
	prospectHandler := handlers.NewProspectHandler(createProspectUC, updateProspectUC, importProspectsUC, prospectRepo)
	reminderHandler := handlers.NewReminderHandler(runRemindersUC, prospectRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/prospects", prospectHandler.HandleCreate)
	r.Get("/prospects", prospectHandler.HandleList)
	r.Post("/prospects/import", prospectHandler.HandleImport)
	r.Get("/prospects/export", prospectHandler.HandleExport)
	r.Get("/prospects/{id}", prospectHandler.HandleGet)
	r.Put("/prospects/{id}", prospectHandler.HandleUpdate)
	r.Delete("/prospects/{id}", prospectHandler.HandleDelete)

	r.Get("/reminders/due", reminderHandler.HandleDueList)
	r.Post("/reminders/run", reminderHandler.HandleRun)

	r.Get("/settings/reminder-frequency", settingsHandler.HandleGet)
	r.Put("/settings/reminder-frequency", settingsHandler.HandlePut)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 Prospect CRM rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
