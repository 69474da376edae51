package api

import (
	"net/http"

	"email-audit-backend/internal/auth/delivery"
	authUsecase "email-audit-backend/internal/auth/usecase"
	ingestionDelivery "email-audit-backend/internal/ingestion/delivery"
	reportDelivery "email-audit-backend/internal/report/delivery"
	rulesDelivery "email-audit-backend/internal/rules/delivery"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, ruleHandler *rulesDelivery.RuleHandler, ingestionHandler *ingestionDelivery.IngestionHandler, reportHandler *reportDelivery.ReportHandler) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	// Prometheus metrics (no auth required)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		// Rule routes (protected)
		rules := api.Group("/rules")
		rules.Use(delivery.AuthMiddleware(authUsecase))
		{
			rules.GET("", ruleHandler.GetRules)
			rules.POST("", ruleHandler.CreateRule)
			rules.GET("/:id", ruleHandler.GetRuleByID)
			rules.PUT("/:id", ruleHandler.UpdateRule)
			rules.DELETE("/:id", ruleHandler.DeleteRule)
			rules.PATCH("/:id/active", ruleHandler.SetRuleActive)
		}

		// Ingestion routes (protected)
		ingestion := api.Group("/ingestion")
		ingestion.Use(delivery.AuthMiddleware(authUsecase))
		{
			ingestion.POST("/upload-eml", ingestionHandler.UploadEML)
		}

		// Thread routes (protected)
		threads := api.Group("/threads")
		threads.Use(delivery.AuthMiddleware(authUsecase))
		{
			threads.GET("", ingestionHandler.GetThreads)
			threads.GET("/:id", ingestionHandler.GetThreadByID)
			threads.POST("/:id/audit", reportHandler.TriggerAudit)
			threads.GET("/:id/reports", reportHandler.GetThreadReports)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(delivery.AuthMiddleware(authUsecase))
		{
			reports.GET("/:id", reportHandler.GetReportByID)
		}

		// Settings routes (public) - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", UpdateOllamaSettings)
			settings.POST("/ollama/test", TestOllamaConnection)
		}
	}
}
