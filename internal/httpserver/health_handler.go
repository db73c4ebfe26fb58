package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

// HealthReporter is implemented by *health.Reporter
type HealthReporter interface {
	Report(ctx context.Context) model.HealthCheck
}

type HealthHandler struct {
	reporter HealthReporter
}

func NewHealthHandler(reporter HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// Health always answers 200; the verdict is in the body.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporter.Report(c.Request.Context()))
}

func (h *HealthHandler) Live(c *gin.Context) {
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": model.HealthStatusOK})
}

// Ready answers 503 when any critical dependency is down.
func (h *HealthHandler) Ready(c *gin.Context) {
	report := h.reporter.Report(c.Request.Context())
	status := http.StatusOK
	if report.Status == model.HealthStatusError {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
