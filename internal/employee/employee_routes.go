package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employee")
	{
		employees.GET("/profile", handler.GetProfile)
		employees.POST("/profile", handler.UpdateImageName)
		employees.POST("/contact", handler.UpdateContact)
	}
}
