package payslip

import (
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	payslips.Use(middleware.ContextLogger(logger))
	{
		payslips.GET("", handler.GetAll)
		payslips.GET("/:id", handler.GetById)
		payslips.POST("/upload", handler.Upload)
		payslips.DELETE("/:id", handler.Delete)
	}
}
