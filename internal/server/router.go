package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Progress streaming is same-origin tooling, not a public endpoint; accept all origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewRouter wires the HTTP routes exposed by the forensics API: health, metrics, batch
// submission, and progress streaming, with request logging wrapping every route.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry) (*gin.Engine, *APIHandlers) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(loggingMiddleware(logger), gin.Recovery())

	m := newMetrics(registry)
	handlers := NewAPIHandlers(logger, m)

	engine.GET("/healthz", handlers.handleHealthz)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := engine.Group("/v1")
	v1.POST("/batches", handlers.handleSubmitBatch)
	v1.GET("/batches/:id/progress", handlers.handleBatchProgress)

	return engine, handlers
}

func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
