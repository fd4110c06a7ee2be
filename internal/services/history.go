package services

import (
	"context"

	"github.com/kubev2v/taskpool/internal/models"
	"github.com/kubev2v/taskpool/internal/store"
)

// HistoryListParams filters and paginates the batch history.
type HistoryListParams struct {
	States []models.BatchState
	Name   string
	Limit  uint64
	Offset uint64
}

type HistoryListResult struct {
	Batches []models.BatchStatus
	Total   int
}

// HistoryService is a read-only facade over the batch store.
type HistoryService struct {
	store *store.Store
}

func NewHistoryService(s *store.Store) *HistoryService {
	return &HistoryService{store: s}
}

func (h *HistoryService) List(ctx context.Context, params HistoryListParams) (*HistoryListResult, error) {
	filters := []store.ListOption{
		store.ByStates(params.States...),
		store.ByName(params.Name),
	}

	total, err := h.store.Batches().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	batches, err := h.store.Batches().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &HistoryListResult{Batches: batches, Total: total}, nil
}

func (h *HistoryService) Get(ctx context.Context, id string) (*models.BatchRecord, error) {
	return h.store.Batches().Get(ctx, id)
}
