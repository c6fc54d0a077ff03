package routers

import (
	"github.com/Richard0070/api-denzel/auth"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(h *auth.LinkedRolesHandler, route *gin.Engine) {
	route.GET("/linked-role", h.LinkedRole)
	route.GET("/discord-oauth-callback", h.Callback)
	route.POST("/update-metadata", h.UpdateMetadata)
	route.GET("/api/linked-role", h.Metadata)
}
