package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/group2/meetingbank-etl/app/tasks"
)

func NewHandler(runner RunnerInterface, version string) *Handler {
	return &Handler{runner: runner, version: version}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GetStats returns the result of the most recent pipeline run.
func (h *Handler) GetStats(c *gin.Context) {
	h.mu.Lock()
	last := h.lastResult
	running := h.running
	h.mu.Unlock()

	if last == nil {
		c.JSON(http.StatusOK, gin.H{"running": running, "last_run": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"running": running, "last_run": last})
}

// RunPipeline triggers one pipeline run and returns its aggregated result.
// Only one run is allowed at a time: the sink clients are owned exclusively
// by their loaders for the duration of a run.
func (h *Handler) RunPipeline(c *gin.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "pipeline run already in progress"})
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	var result tasks.PipelineResult
	if rawFile := c.Query("input"); rawFile != "" {
		result = h.runner.RunFromFile(c.Request.Context(), rawFile)
	} else {
		result = h.runner.Run(c.Request.Context())
	}

	h.mu.Lock()
	h.lastResult = &result
	h.mu.Unlock()

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
