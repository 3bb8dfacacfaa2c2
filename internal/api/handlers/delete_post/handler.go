package delete_post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts"
)

const (
	msgInvalidPostID   = "некорректный ID поста"
	msgNotFound        = "пост не найден"
	msgPostHasBookings = "пост нельзя удалить: на него есть бронирования"
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

// Handle DELETE /api/v1/posts/{postId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postIDStr := vars["postId"]

	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /posts/{id} - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	if err := h.service.Delete(r.Context(), postID); err != nil {
		switch {
		case errors.Is(err, posts.ErrPostNotFound):
			h.logger.Warn("DELETE /posts/{id} - Post not found: post_id=%d", postID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, posts.ErrPostHasBookings):
			h.logger.Warn("DELETE /posts/{id} - Post has bookings: post_id=%d", postID)
			handlers.RespondConflict(w, msgPostHasBookings)

		default:
			h.logger.Error("DELETE /posts/{id} - Failed to delete post: post_id=%d, error=%v", postID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /posts/{id} - Post deleted successfully: post_id=%d", postID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
