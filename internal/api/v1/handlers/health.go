package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"interview-ai/internal/api/v1/dto"
)

const (
	readinessTimeout  = 3 * time.Second
	readinessCacheTTL = 30 * time.Second
)

// HealthChecker is implemented by the active STT provider
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves the health check endpoints
type HealthHandler struct {
	info dto.HealthData
	stt  HealthChecker
	now  func() time.Time

	mu        sync.Mutex
	checkedAt time.Time
	sttStatus string
}

// NewHealthHandler creates a new health handler. stt may be nil, in which
// case no readiness detail is reported.
func NewHealthHandler(info dto.HealthData, stt HealthChecker) *HealthHandler {
	if info.Status == "" {
		info.Status = dto.HealthStatusOK
	}
	return &HealthHandler{info: info, stt: stt, now: time.Now}
}

// Index handles GET / and GET /ai
//
// @Summary Health check
// @Description Reports that the server is running along with the configured providers
// @Description and whether the STT backend answered its last readiness check.
// @Tags health
// @Produce json
// @Success 200 {object} dto.Response{data=dto.HealthData} "Server is running"
// @Router / [get]
func (h *HealthHandler) Index(c *gin.Context) {
	info := h.info
	if h.stt != nil {
		info.STTStatus = h.readiness(c.Request.Context())
		if info.STTStatus != dto.HealthStatusOK {
			info.Status = dto.HealthStatusDegraded
		}
	}
	c.JSON(http.StatusOK, dto.NewResponse(dto.MessageServerRunning, info))
}

// readiness checks the STT backend at most once per readinessCacheTTL
func (h *HealthHandler) readiness(ctx context.Context) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sttStatus != "" && h.now().Sub(h.checkedAt) < readinessCacheTTL {
		return h.sttStatus
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readinessTimeout)
	defer cancel()
	h.sttStatus = dto.HealthStatusOK
	if err := h.stt.HealthCheck(ctx); err != nil {
		h.sttStatus = dto.HealthStatusUnavailable
	}
	h.checkedAt = h.now()
	return h.sttStatus
}

// Liveness handles GET /health
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Server is alive"
// @Router /health [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}
