package codetemplate

import (
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	templates := r.Group("/code-templates")
	templates.Use(middleware.AuthMiddleware())
	templates.Use(middleware.ContextLogger(logger))
	{
		templates.GET("", handler.GetAll)
		templates.GET("/:id", handler.GetById)
		templates.POST("", handler.Create)
		templates.PUT("/:id", handler.Update)
		templates.DELETE("/:id", handler.Delete)
	}
}
