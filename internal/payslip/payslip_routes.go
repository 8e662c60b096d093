package payslip

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	payslip := rg.Group("/payslip")
	{
		payslip.GET("/list", handler.List)
		payslip.GET("/download", handler.Download)
	}
}
