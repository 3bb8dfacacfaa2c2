package list_posts

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

type Handler struct {
	service PostService
	logger  Logger
}

func NewHandler(service PostService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/posts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /posts - Failed to list posts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /posts - Posts retrieved successfully: count=%d", len(result.Posts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
