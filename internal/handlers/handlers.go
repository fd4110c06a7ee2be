package handlers

import (
	v1 "github.com/kubev2v/taskpool/api/v1"
	"github.com/kubev2v/taskpool/internal/services"
)

type Handler struct {
	runner  *services.Runner
	history *services.HistoryService
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(runner *services.Runner, history *services.HistoryService) *Handler {
	return &Handler{
		runner:  runner,
		history: history,
	}
}
