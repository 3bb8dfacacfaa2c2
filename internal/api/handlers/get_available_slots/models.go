package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	PostID int64  `json:"postId"`
	Date   string `json:"date"`
	Slots  []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Time     string `json:"time"` // Абсолютный UTC момент, ISO 8601
	IsClosed bool   `json:"isClosed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:     slot.Time.Format(time.RFC3339),
			IsClosed: slot.IsClosed,
		}
	}

	return &SlotsResponse{
		PostID: resp.PostID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(postID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		PostID: postID,
		Date:   date,
	}, nil
}
