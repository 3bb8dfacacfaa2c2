package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// CreatePostRequest запрос на создание поста
// Все поля опциональны: пустой запрос создает включенный пост
// с авто-именем, глобальными часами и интервалом 30 минут
type CreatePostRequest struct {
	Name            *string `json:"name,omitempty"`
	IsEnabled       *bool   `json:"isEnabled,omitempty"`
	UseCustomHours  *bool   `json:"useCustomHours,omitempty"`
	StartTime       *string `json:"startTime,omitempty"` // "HH:MM"
	EndTime         *string `json:"endTime,omitempty"`   // "HH:MM"
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
}

// UpdatePostRequest частичное обновление поста
type UpdatePostRequest struct {
	Name            *string `json:"name,omitempty"`
	IsEnabled       *bool   `json:"isEnabled,omitempty"`
	UseCustomHours  *bool   `json:"useCustomHours,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	IntervalMinutes *int    `json:"intervalMinutes,omitempty"`
}

// SetClosedSlotRequest запрос на закрытие/открытие времени в оверлее
type SetClosedSlotRequest struct {
	Time   string `json:"time"` // "HH:MM"
	Closed bool   `json:"closed"`
}

// Response модели

// PostResponse ответ с данными поста
type PostResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	IsEnabled       bool    `json:"isEnabled"`
	UseCustomHours  bool    `json:"useCustomHours"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	IntervalMinutes int     `json:"intervalMinutes"`

	ClosedSlots []string `json:"closedSlots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostListResponse ответ со списком постов
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

// Методы конвертации

// FromDomainPost конвертирует domain модель в DTO
func FromDomainPost(p *domain.Post, closedSlots []types.TimeString) *PostResponse {
	if p == nil {
		return nil
	}

	resp := &PostResponse{
		ID:              p.ID,
		Name:            p.Name,
		IsEnabled:       p.IsEnabled,
		UseCustomHours:  p.UseCustomHours,
		IntervalMinutes: p.IntervalMinutes,
		ClosedSlots:     make([]string, 0, len(closedSlots)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	if p.StartTime != nil {
		s := p.StartTime.String()
		resp.StartTime = &s
	}
	if p.EndTime != nil {
		s := p.EndTime.String()
		resp.EndTime = &s
	}

	for _, t := range closedSlots {
		resp.ClosedSlots = append(resp.ClosedSlots, t.String())
	}

	return resp
}
