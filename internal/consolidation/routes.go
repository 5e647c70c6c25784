package consolidation

import (
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	consolidated := r.Group("/consolidated")
	consolidated.Use(middleware.AuthMiddleware())
	consolidated.Use(middleware.ContextLogger(logger))
	{
		consolidated.GET("", handler.GetConsolidated)
		consolidated.GET("/export", handler.Export)
		consolidated.GET("/items/export", handler.ExportLineItems)
	}
}
