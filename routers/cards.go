package routers

import (
	"github.com/Richard0070/api-denzel/cards"
	"github.com/gin-gonic/gin"
)

func RegisterCardRoutes(h *cards.CardsHandler, route *gin.Engine) {
	route.GET("/welcome", h.Welcome)
	route.GET("/rank", h.Rank)
}
