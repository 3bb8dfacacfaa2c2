package update_post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

const (
	msgInvalidPostID      = "некорректный ID поста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "пост не найден"
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

// Handle PATCH /api/v1/posts/{postId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postIDStr := vars["postId"]

	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /posts/{id} - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	var req models.UpdatePostRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /posts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), postID, &req)
	if err != nil {
		switch {
		case errors.Is(err, posts.ErrPostNotFound):
			h.logger.Warn("PATCH /posts/{id} - Post not found: post_id=%d", postID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, posts.ErrInvalidInterval):
			h.logger.Warn("PATCH /posts/{id} - Invalid interval: post_id=%d, error=%v", postID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, posts.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /posts/{id} - Invalid time range: post_id=%d, error=%v", postID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, posts.ErrInvalidInput):
			h.logger.Warn("PATCH /posts/{id} - Invalid input: post_id=%d, error=%v", postID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /posts/{id} - Failed to update post: post_id=%d, error=%v", postID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /posts/{id} - Post updated successfully: post_id=%d", postID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
