package codegroup

import (
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	groups := r.Group("/code-groups")
	groups.Use(middleware.AuthMiddleware())
	groups.Use(middleware.ContextLogger(logger))
	{
		groups.GET("", handler.GetAll)
		groups.GET("/:id", handler.GetById)
		groups.POST("", handler.Create)
		groups.PUT("/:id", handler.Update)
		groups.DELETE("/:id", handler.Delete)
	}
}
