package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasferraz/prospecta/internal/config"
	"github.com/lucasferraz/prospecta/internal/infra/database"
	"github.com/lucasferraz/prospecta/internal/infra/http/handlers"
	"github.com/lucasferraz/prospecta/internal/infra/http/middleware"
	"github.com/lucasferraz/prospecta/internal/infra/mail"
	"github.com/lucasferraz/prospecta/internal/infra/queue"
	"github.com/lucasferraz/prospecta/internal/infra/worker"
	"github.com/lucasferraz/prospecta/internal/usecase"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	scriptRepo := database.NewScriptRepository(db)
	listRepo := database.NewListRepository(db)
	projectRepo := database.NewProjectRepository(db)
	txRepo := database.NewTransactionRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	var mailer queue.SummaryMailer
	if cfg.MailHost != "" && cfg.OperatorEmail != "" {
		mailer = mail.NewEmailSender(
			cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass,
			cfg.MailFrom, cfg.OperatorEmail,
		)
	}

	// 3. Workers
	eventWorker := queue.NewWorker(rabbitMQ.Ch, leadRepo, mailer)
	go eventWorker.Start(queue.QueueName)

	followUpWorker := worker.NewFollowUpWorker(leadRepo)
	go followUpWorker.Start(context.Background())

	// 4. UseCases
	sessionEngine := usecase.NewSessionEngine(leadRepo, scriptRepo, producer)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, listRepo)
	dashboardUC := usecase.NewDashboardUseCase(leadRepo, projectRepo)

	// 5. Handlers
	prospectHandler := handlers.NewProspectHandler(sessionEngine)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	scriptHandler := handlers.NewScriptHandler(scriptRepo)
	listHandler := handlers.NewListHandler(listRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	financeHandler := handlers.NewFinanceHandler(txRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	importHandler := handlers.NewImportHandler(importUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Route("/prospect", func(r chi.Router) {
		r.Post("/session", prospectHandler.CreateSession)
		r.Get("/session", prospectHandler.GetSession)
		r.Post("/session/start", prospectHandler.StartSession)
		r.Post("/session/end", prospectHandler.EndSession)
		r.Post("/session/outcome", prospectHandler.RecordOutcome)
		r.Post("/session/touch", prospectHandler.RecordTouch)
		r.Put("/session/draft", prospectHandler.UpdateDraft)
		r.Get("/session/summary", prospectHandler.GetSummary)
	})

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Save)
		r.Get("/{id}", leadHandler.Get)
		r.Delete("/{id}", leadHandler.Delete)
		r.Post("/import", importHandler.Import)
	})

	r.Route("/scripts", func(r chi.Router) {
		r.Get("/", scriptHandler.List)
		r.Post("/", scriptHandler.Save)
		r.Delete("/{id}", scriptHandler.Delete)
	})

	r.Route("/lists", func(r chi.Router) {
		r.Get("/", listHandler.List)
		r.Post("/", listHandler.Save)
		r.Delete("/{id}", listHandler.Delete)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projectHandler.List)
		r.Post("/", projectHandler.Create)
		r.Put("/{id}/status", projectHandler.Move)
		r.Put("/{id}/checklist", projectHandler.UpdateChecklist)
		r.Delete("/{id}", projectHandler.Delete)
	})

	r.Route("/finance", func(r chi.Router) {
		r.Get("/", financeHandler.List)
		r.Post("/", financeHandler.Save)
		r.Get("/summary", financeHandler.Summary)
		r.Delete("/{id}", financeHandler.Delete)
	})

	r.Get("/settings", settingsHandler.Get)
	r.Put("/settings", settingsHandler.Save)
	r.Get("/dashboard/stats", dashboardHandler.Stats)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + cfg.AppPort
	log.Printf("🔥 Server Prospecta rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
