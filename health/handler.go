package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Richard0070/api-denzel/responses"
	"github.com/gin-gonic/gin"
)

// ReadinessCheck is implemented by every backing dependency that can
// hold the service back from taking traffic.
type ReadinessCheck interface {
	IsReady(ctx context.Context) error
	Name() string
}

type HealthHandler struct {
	checks []ReadinessCheck
}

func NewHealthHandler(checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Live godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	responses.JSONData(c, http.StatusOK, gin.H{"status": "alive"})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Checks every backing store and reports the first failure
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.IsReady(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"check":  check.Name(),
				"error":  err.Error(),
			})
			return
		}
	}

	responses.JSONData(c, http.StatusOK, gin.H{"status": "ready"})
}
