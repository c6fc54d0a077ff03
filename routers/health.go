package routers

import (
	"github.com/Richard0070/api-denzel/health"
	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(h *health.HealthHandler, route *gin.Engine) {
	group := route.Group("/health")
	{
		group.GET("/live", h.Live)
		group.GET("/ready", h.Ready)
	}
}
