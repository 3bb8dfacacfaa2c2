package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidHours        = "некорректные рабочие часы, ожидается 0 <= start < end <= 24"
	msgInvalidSlotDuration = "некорректная длительность слота"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidHours):
			h.logger.Warn("PUT /schedule - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, schedule.ErrInvalidSlotDuration):
			h.logger.Warn("PUT /schedule - Invalid slot duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		default:
			h.logger.Error("PUT /schedule - Failed to update working hours: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule - Working hours updated successfully: %d-%d, slot duration %d minutes",
		result.StartHour, result.EndHour, result.SlotDurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
