package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskpool/api/v1"
	"github.com/kubev2v/taskpool/internal/services"
	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize within int.
	maxPage = math.MaxInt / maxPageSize
)

// ListBatches returns finished batches, newest first
// (GET /batches)
func (h *Handler) ListBatches(c *gin.Context, params v1.ListBatchesParams) {
	page := 1
	if params.Page != nil {
		if *params.Page < 1 || *params.Page > maxPage {
			c.JSON(http.StatusBadRequest, v1.Error{Error: fmt.Sprintf("page must be between 1 and %d", maxPage)})
			return
		}
		page = *params.Page
	}

	pageSize := defaultPageSize
	if params.PageSize != nil {
		if *params.PageSize < 1 || *params.PageSize > maxPageSize {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "pageSize must be between 1 and 100"})
			return
		}
		pageSize = *params.PageSize
	}

	filter := services.HistoryListParams{
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}
	if params.State != nil {
		states, err := v1.ParseBatchStates(*params.State)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
			return
		}
		filter.States = states
	}
	if params.Name != nil {
		filter.Name = *params.Name
	}

	result, err := h.history.List(c.Request.Context(), filter)
	if err != nil {
		zap.S().Named("history_handler").Errorw("failed to list batches", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to list batches"})
		return
	}

	resp := v1.BatchListResponse{
		Page:      page,
		PageCount: (result.Total + pageSize - 1) / pageSize,
		Total:     result.Total,
		Batches:   make([]v1.BatchStatus, 0, len(result.Batches)),
	}
	for _, b := range result.Batches {
		resp.Batches = append(resp.Batches, v1.NewBatchStatusFromModel(b))
	}

	c.JSON(http.StatusOK, resp)
}

// GetBatch returns a finished batch with the outputs of its successful tasks
// (GET /batches/{id})
func (h *Handler) GetBatch(c *gin.Context, id string) {
	record, err := h.history.Get(c.Request.Context(), id)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
			return
		}
		zap.S().Named("history_handler").Errorw("failed to get batch", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to get batch"})
		return
	}

	c.JSON(http.StatusOK, v1.NewBatchDetailsFromModel(*record))
}
