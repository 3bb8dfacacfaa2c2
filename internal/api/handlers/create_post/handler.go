package create_post

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный интервал слотов, допустимы 30, 60, 90, 120"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle POST /api/v1/posts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /posts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, posts.ErrInvalidInterval):
			h.logger.Warn("POST /posts - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, posts.ErrInvalidTimeRange):
			h.logger.Warn("POST /posts - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, posts.ErrInvalidInput):
			h.logger.Warn("POST /posts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /posts - Failed to create post: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /posts - Post created successfully: post_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
