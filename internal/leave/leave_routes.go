package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, idempotency gin.HandlerFunc) {
	leave := rg.Group("/leave")
	{
		leave.POST("/apply", idempotency, handler.Apply)
		leave.GET("/types", handler.Types)
	}
}
