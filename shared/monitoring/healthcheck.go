package monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves /health and /status from a Monitor.
type HealthHandler struct {
	monitor *Monitor
}

func NewHealthHandler(monitor *Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

func (h *HealthHandler) Register(r gin.IRoutes) {
	r.GET("/health", h.health)
	r.GET("/status", h.status)
}

func (h *HealthHandler) health(c *gin.Context) {
	if h.monitor.IsHealthy() {
		c.String(http.StatusOK, "OK - %s", h.monitor.GetStatusSummary())
		return
	}
	c.String(http.StatusServiceUnavailable, "Service unhealthy - %s", h.monitor.GetStatusSummary())
}

func (h *HealthHandler) status(c *gin.Context) {
	c.String(http.StatusOK, "%s", h.monitor.GetStatusSummary())
}
