package main

import (
	"log"

	api "email-audit-backend/cmd/api"
	authdomain "email-audit-backend/internal/auth/domain"
	authRepo "email-audit-backend/internal/auth/repository"
	authUsecase "email-audit-backend/internal/auth/usecase"
	ingestiondomain "email-audit-backend/internal/ingestion/domain"
	ingestionRepo "email-audit-backend/internal/ingestion/repository"
	reportdomain "email-audit-backend/internal/report/domain"
	reportRepo "email-audit-backend/internal/report/repository"
	rulesdomain "email-audit-backend/internal/rules/domain"
	rulesRepo "email-audit-backend/internal/rules/repository"
	"email-audit-backend/pkg/config"
	"email-audit-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.Contact{},
		&ingestiondomain.EmailThread{},
		&ingestiondomain.EmailMessage{},
		&rulesdomain.Rule{},
		&reportdomain.AuditReport{},
		&reportdomain.RuleOutcome{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	threadRepository := ingestionRepo.NewThreadRepository(db)
	messageRepository := ingestionRepo.NewMessageRepository(db)
	ruleRepository := rulesRepo.NewRuleRepository(db)
	reportRepository := reportRepo.NewReportRepository(db)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)

	// Initialize HTTP handler; this also starts the ingest and audit workers
	handler := api.NewHandler(authUsecaseInstance, cfg, threadRepository, messageRepository, ruleRepository, reportRepository)
	defer handler.Stop()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
