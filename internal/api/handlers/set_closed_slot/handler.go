package set_closed_slot

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
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
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

// Handle PUT /api/v1/posts/{postId}/closed-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postIDStr := vars["postId"]

	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /posts/{id}/closed-slots - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	var req models.SetClosedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /posts/{id}/closed-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetClosedSlot(r.Context(), postID, &req)
	if err != nil {
		switch {
		case errors.Is(err, posts.ErrPostNotFound):
			h.logger.Warn("PUT /posts/{id}/closed-slots - Post not found: post_id=%d", postID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, posts.ErrInvalidInput):
			h.logger.Warn("PUT /posts/{id}/closed-slots - Invalid time: post_id=%d, time=%s", postID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("PUT /posts/{id}/closed-slots - Failed to set closed slot: post_id=%d, error=%v",
				postID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /posts/{id}/closed-slots - Closed slot set successfully: post_id=%d, time=%s, closed=%v",
		postID, req.Time, req.Closed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
