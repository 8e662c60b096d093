package media

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	employee := rg.Group("/employee")
	{
		employee.POST("/image", handler.Upload)
	}
}
