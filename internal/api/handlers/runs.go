package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"battery-arbitrage/internal/api/models"
	"battery-arbitrage/internal/recorder"
)

// RunsHandler serves recorded simulation runs.
type RunsHandler struct {
	store recorder.Recorder
}

func NewRunsHandler(store recorder.Recorder) *RunsHandler {
	return &RunsHandler{store: store}
}

// ListRuns handles GET /api/v1/runs
func (h *RunsHandler) ListRuns(c *gin.Context) {
	var q models.RunsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}

	runs, err := h.store.ListRuns(c.Request.Context(), q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewError("RUNS_LOAD_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunsHandler) GetRun(c *gin.Context) {
	run, err := h.store.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, recorder.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.NewError("RUN_NOT_FOUND", "no run with id "+c.Param("id")))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewError("RUNS_LOAD_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusOK, run)
}
