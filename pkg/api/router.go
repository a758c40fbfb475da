package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chargedcycleworks/service-intake/pkg/middleware"
)

// NewRouter registers the mock backend routes.
func NewRouter(h *Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(allowedOrigins))

	router.POST("/run-task", h.HandleRunTask)
	router.POST("/api/service-intake", h.HandleServiceIntake)
	router.GET("/api/health", h.HealthCheck)
	router.GET("/health", h.HealthCheck)

	return router
}
