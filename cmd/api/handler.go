package api

import (
	"log"

	auditUsecasePkg "email-audit-backend/internal/audit/usecase"
	authUsecasePkg "email-audit-backend/internal/auth/usecase"
	ingestionDelivery "email-audit-backend/internal/ingestion/delivery"
	ingestionRepo "email-audit-backend/internal/ingestion/repository"
	ingestionUsecasePkg "email-audit-backend/internal/ingestion/usecase"
	reportDelivery "email-audit-backend/internal/report/delivery"
	reportRepo "email-audit-backend/internal/report/repository"
	rulesDelivery "email-audit-backend/internal/rules/delivery"
	rulesRepo "email-audit-backend/internal/rules/repository"
	rulesUsecasePkg "email-audit-backend/internal/rules/usecase"
	"email-audit-backend/pkg/ai"
	"email-audit-backend/pkg/config"
	"email-audit-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecasePkg.AuthUsecase
	config           *config.Config
	auditWorker      *auditUsecasePkg.AuditWorkerService
	ingestWorker     *ingestionUsecasePkg.IngestWorkerService
	ruleHandler      *rulesDelivery.RuleHandler
	ingestionHandler *ingestionDelivery.IngestionHandler
	reportHandler    *reportDelivery.ReportHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	cfg *config.Config,
	threadRepository ingestionRepo.ThreadRepository,
	messageRepository ingestionRepo.MessageRepository,
	ruleRepository rulesRepo.RuleRepository,
	reportRepository reportRepo.ReportRepository,
) *Handler {
	// Initialize runtime config for settings API
	InitRuntimeConfig(cfg.OllamaBaseURL, cfg.OllamaModel)

	// Initialize AI service with dynamic config getters for runtime updates
	aiCfg := ai.DynamicConfig{
		Provider:         ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:     cfg.GeminiApiKey,
		GeminiModel:      cfg.GeminiModel,
		GetOllamaBaseURL: GetRuntimeOllamaBaseURL,
		GetOllamaModel:   GetRuntimeOllamaModel,
	}
	evaluator, err := ai.NewRuleEvaluatorWithDynamicConfig(aiCfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI evaluator: %v", err)
	}
	log.Printf("AI evaluator initialized with provider: %s (dynamic config enabled)", cfg.AIProvider)

	metrics.Register()

	// Audit worker pool running the evaluation pipeline in the background
	auditUc := auditUsecasePkg.NewAuditUsecase(threadRepository, messageRepository, ruleRepository, reportRepository, evaluator)
	auditWorker := auditUsecasePkg.NewAuditWorkerService(auditUc, cfg.AuditWorkerCount)
	auditWorker.Start()

	// Ingest worker pool turning uploaded .eml files into threads
	ingestUc := ingestionUsecasePkg.NewIngestUsecase(threadRepository, messageRepository, auditWorker)
	ingestWorker := ingestionUsecasePkg.NewIngestWorkerService(ingestUc, cfg.IngestWorkerCount)
	ingestWorker.Start()

	ruleUc := rulesUsecasePkg.NewRuleUsecase(ruleRepository)

	return &Handler{
		authUsecase:      authUc,
		config:           cfg,
		auditWorker:      auditWorker,
		ingestWorker:     ingestWorker,
		ruleHandler:      rulesDelivery.NewRuleHandler(ruleUc),
		ingestionHandler: ingestionDelivery.NewIngestionHandler(ingestWorker, threadRepository, cfg.UploadDir),
		reportHandler:    reportDelivery.NewReportHandler(reportRepository, threadRepository, auditWorker),
	}
}

// Stop drains the background worker pools
func (h *Handler) Stop() {
	h.ingestWorker.Stop()
	h.auditWorker.Stop()
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.ruleHandler, h.ingestionHandler, h.reportHandler)

	return r.Run(addr)
}
