package routes

import (
	"Service_Monitor/internal/service-monitor/api/handler"

	"github.com/gin-gonic/gin"
)

func SetUpMonitorRoutes(r *gin.Engine, handler handler.MonitorHandler) {
	r.GET("/health", handler.Health())

	apiRoutes := r.Group("/api")
	apiRoutes.GET("/status", handler.GetStatus())
	apiRoutes.GET("/status/export", handler.ExportStatus())
	apiRoutes.GET("/history/:serviceId", handler.GetHistory())
}
