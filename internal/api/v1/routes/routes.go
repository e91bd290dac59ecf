package routes

import (
	"github.com/gin-gonic/gin"

	"interview-ai/internal/api/v1/handlers"
	"interview-ai/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	STTService      services.STTService
	FeedbackService services.FeedbackService
}

// RegisterRoutes registers all v1 API routes on router. The server mounts
// the same routes under /api/v1 and /ai/v1.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	sttHandler := handlers.NewSTTHandler(container.STTService)
	router.POST("/stt", sttHandler.Transcribe)

	feedbackHandler := handlers.NewFeedbackHandler(container.FeedbackService)
	router.POST("/feedback", feedbackHandler.Generate)
}

// RegisterHealthRoutes registers the health checks on the root router
func RegisterHealthRoutes(router gin.IRoutes, handler *handlers.HealthHandler) {
	router.GET("/", handler.Index)
	router.GET("/ai", handler.Index)
	router.GET("/health", handler.Liveness)
}
