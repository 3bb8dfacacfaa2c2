package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPostID = "некорректный ID поста"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/posts/{postId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	postIDStr := vars["postId"]
	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /posts/{id}/slots - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /posts/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(postID, dateStr)
	if err != nil {
		h.logger.Warn("GET /posts/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /posts/{id}/slots - Invalid input: post_id=%d, error=%v", postID, err)
			handlers.RespondBadRequest(w, msgInvalidPostID)

		default:
			h.logger.Error("GET /posts/{id}/slots - Failed to get slots: post_id=%d, date=%s, error=%v",
				postID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /posts/{id}/slots - Slots retrieved successfully: post_id=%d, date=%s, slots_count=%d",
		postID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
