package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/pipeline"
)

// APIHandlers collects the batch submission, progress-streaming, and health handlers.
type APIHandlers struct {
	logger   *slog.Logger
	registry *batchRegistry
	metrics  *metrics
}

// NewAPIHandlers constructs the handler set.
func NewAPIHandlers(logger *slog.Logger, m *metrics) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		registry: newBatchRegistry(),
		metrics:  m,
	}
}

type submitBatchRequest struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// handleSubmitBatch implements POST /v1/batches: runs the pipeline synchronously over
// the posted transactions and returns the report, recording progress frames along the
// way so a later GET .../progress websocket call for the returned batch_id can replay
// them.
func (h *APIHandlers) handleSubmitBatch(c *gin.Context) {
	var req submitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.requestsTotal.WithLabelValues("submit_batch", "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New().String()
	rec := h.registry.create(id)

	result, err := pipeline.Run(req.Transactions, pipeline.Options{
		Progress: func(stage string, percent int) {
			rec.appendFrame(ProgressFrame{Stage: stage, Percent: percent})
		},
	})
	if err != nil {
		h.metrics.requestsTotal.WithLabelValues("submit_batch", "500").Inc()
		h.logger.Error("pipeline run failed", "batch_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec.setReport(result)
	h.metrics.observeBatch(&result)
	h.metrics.requestsTotal.WithLabelValues("submit_batch", "200").Inc()

	c.JSON(http.StatusOK, gin.H{
		"batch_id": id,
		"report":   result,
	})
}

// handleBatchProgress implements GET /v1/batches/:id/progress: upgrades to a websocket
// and streams the recorded progress frames for the batch, then closes.
func (h *APIHandlers) handleBatchProgress(c *gin.Context) {
	id := c.Param("id")
	rec, ok := h.registry.get(id)
	if !ok {
		h.metrics.requestsTotal.WithLabelValues("batch_progress", "404").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown batch id"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "batch_id", id, "error", err)
		return
	}
	defer conn.Close()

	frames, _ := rec.snapshot()
	for _, frame := range frames {
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("websocket write failed", "batch_id", id, "error", err)
			return
		}
	}
}

// handleHealthz implements GET /healthz.
func (h *APIHandlers) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
