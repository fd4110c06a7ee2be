package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskpool/api/v1"
)

// GetStatus returns the status of the current or last batch
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewBatchStatusFromModel(h.runner.Status()))
}

// CancelBatch stops admission of the remaining tasks of the running batch
// (POST /cancel)
func (h *Handler) CancelBatch(c *gin.Context) {
	if !h.runner.CancelRunning() {
		c.JSON(http.StatusConflict, v1.Error{Error: "no batch is running"})
		return
	}

	zap.S().Named("batch_handler").Infow("batch cancelled", "remote", c.ClientIP())

	c.JSON(http.StatusAccepted, v1.NewBatchStatusFromModel(h.runner.Status()))
}
