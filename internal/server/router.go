// Package server exposes the detection service over the REST/JSON
// boundary consumed by the detection client and the web front-end.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/metrics"
)

// NewRouter assembles the gin engine with middleware and all routes under
// /api/v1. collector may be nil to skip instrumentation (tests).
func NewRouter(
	detectionHandler *DetectionHandler,
	historyHandler *HistoryHandler,
	collector *metrics.Collector,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(cors())
	router.Use(gin.Recovery())
	if collector != nil {
		router.Use(collectMetrics(collector))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/detect", detectionHandler.Detect)
		v1.GET("/detect/:id", detectionHandler.GetByID)

		v1.GET("/history", historyHandler.List)
		v1.GET("/history/:id", historyHandler.GetByID)
		v1.DELETE("/history/:id", historyHandler.Delete)
		v1.DELETE("/history", historyHandler.DeleteAll)
	}

	return router
}
