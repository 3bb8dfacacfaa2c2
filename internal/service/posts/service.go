package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	postRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/post"
	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис реестра постов и оверлея закрытых времён
type Service struct {
	postRepo PostRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса постов
func NewService(postRepo PostRepository, logger Logger) *Service {
	return &Service{
		postRepo: postRepo,
		logger:   logger,
	}
}

// Create создает новый пост
// Без имени пост получает авто-имя по порядковому номеру
func (s *Service) Create(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error) {
	s.logger.Info("Create: creating post, name=%v", req.Name)

	post := &domain.Post{
		IsEnabled:       true,
		UseCustomHours:  false,
		IntervalMinutes: domain.DefaultSlotDurationMinutes,
	}

	if req.IsEnabled != nil {
		post.IsEnabled = *req.IsEnabled
	}
	if req.UseCustomHours != nil {
		post.UseCustomHours = *req.UseCustomHours
	}
	if req.IntervalMinutes != nil {
		if !domain.IsAllowedInterval(*req.IntervalMinutes) {
			s.logger.Warn("Create: invalid interval=%d", *req.IntervalMinutes)
			return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, *req.IntervalMinutes)
		}
		post.IntervalMinutes = *req.IntervalMinutes
	}

	startTime, endTime, err := parseCustomHours(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("Create: invalid custom hours: %v", err)
		return nil, err
	}
	post.StartTime = startTime
	post.EndTime = endTime

	if req.Name != nil && *req.Name != "" {
		post.Name = *req.Name
	} else {
		name, err := s.nextAutoName(ctx)
		if err != nil {
			return nil, err
		}
		post.Name = name
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: post id=%d created", created.ID)
	return models.FromDomainPost(created, nil), nil
}

// List возвращает все посты вместе с их закрытыми временами
func (s *Service) List(ctx context.Context) (*models.PostListResponse, error) {
	s.logger.Info("List: fetching posts")

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]models.PostResponse, 0, len(posts))
	for _, p := range posts {
		closedSlots, err := s.postRepo.ListClosedSlots(ctx, p.ID)
		if err != nil {
			s.logger.Error("List: failed to get closed slots for post id=%d: %v", p.ID, err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}
		result = append(result, *models.FromDomainPost(p, closedSlots))
	}

	s.logger.Info("List: fetched %d posts", len(result))
	return &models.PostListResponse{Posts: result}, nil
}

// Update частично обновляет пост
// UseCustomHours без заданных времён оставляет последние сохранённые значения
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.PostResponse, error) {
	s.logger.Info("Update: updating post id=%d", id)

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			s.logger.Warn("Update: post id=%d not found", id)
			return nil, ErrPostNotFound
		}
		s.logger.Error("Update: repository error for post id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil && *req.Name != "" {
		post.Name = *req.Name
	}
	if req.IsEnabled != nil {
		post.IsEnabled = *req.IsEnabled
	}
	if req.UseCustomHours != nil {
		post.UseCustomHours = *req.UseCustomHours
	}
	if req.IntervalMinutes != nil {
		if !domain.IsAllowedInterval(*req.IntervalMinutes) {
			s.logger.Warn("Update: invalid interval=%d for post id=%d", *req.IntervalMinutes, id)
			return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, *req.IntervalMinutes)
		}
		post.IntervalMinutes = *req.IntervalMinutes
	}

	if req.StartTime != nil || req.EndTime != nil {
		// Частичное задание дополняется текущим значением поста
		startStr := req.StartTime
		if startStr == nil && post.StartTime != nil {
			s := post.StartTime.String()
			startStr = &s
		}
		endStr := req.EndTime
		if endStr == nil && post.EndTime != nil {
			s := post.EndTime.String()
			endStr = &s
		}

		startTime, endTime, err := parseCustomHours(startStr, endStr)
		if err != nil {
			s.logger.Warn("Update: invalid custom hours for post id=%d: %v", id, err)
			return nil, err
		}
		if startTime != nil {
			post.StartTime = startTime
		}
		if endTime != nil {
			post.EndTime = endTime
		}
	}

	updated, err := s.postRepo.Update(ctx, post)
	if err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("Update: repository error for post id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	closedSlots, err := s.postRepo.ListClosedSlots(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to get closed slots for post id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: post id=%d updated", id)
	return models.FromDomainPost(updated, closedSlots), nil
}

// Delete удаляет пост вместе с его закрытыми временами (каскадом в БД)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting post id=%d", id)

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			s.logger.Warn("Delete: post id=%d not found", id)
			return ErrPostNotFound
		}
		if errors.Is(err, postRepo.ErrPostInUse) {
			s.logger.Warn("Delete: post id=%d has bookings", id)
			return ErrPostHasBookings
		}
		s.logger.Error("Delete: repository error for post id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: post id=%d deleted", id)
	return nil
}

// SetClosedSlot закрывает или открывает время в оверлее поста
// Операция идемпотентна; время не проверяется на попадание в текущие рабочие часы
func (s *Service) SetClosedSlot(ctx context.Context, postID int64, req *models.SetClosedSlotRequest) (*models.PostResponse, error) {
	s.logger.Info("SetClosedSlot: post id=%d, time=%s, closed=%v", postID, req.Time, req.Closed)

	timeOfDay, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		s.logger.Warn("SetClosedSlot: invalid time=%s for post id=%d", req.Time, postID)
		return nil, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.Time)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			s.logger.Warn("SetClosedSlot: post id=%d not found", postID)
			return nil, ErrPostNotFound
		}
		s.logger.Error("SetClosedSlot: repository error for post id=%d: %v", postID, err)
		return nil, fmt.Errorf("%w: SetClosedSlot - repository error: %v", ErrInternal, err)
	}

	if err := s.postRepo.SetClosedSlot(ctx, postID, timeOfDay, req.Closed); err != nil {
		s.logger.Error("SetClosedSlot: repository error for post id=%d: %v", postID, err)
		return nil, fmt.Errorf("%w: SetClosedSlot - repository error: %v", ErrInternal, err)
	}

	closedSlots, err := s.postRepo.ListClosedSlots(ctx, postID)
	if err != nil {
		s.logger.Error("SetClosedSlot: failed to get closed slots for post id=%d: %v", postID, err)
		return nil, fmt.Errorf("%w: SetClosedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetClosedSlot: post id=%d time %s closed=%v", postID, timeOfDay, req.Closed)
	return models.FromDomainPost(post, closedSlots), nil
}

// nextAutoName подбирает имя по количеству постов в реестре
func (s *Service) nextAutoName(ctx context.Context) (string, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.logger.Error("nextAutoName: repository error: %v", err)
		return "", fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	return fmt.Sprintf("Post %d", len(posts)+1), nil
}

// parseCustomHours валидирует пару времён собственного расписания
// Обе границы опциональны, но при наличии обеих начало должно быть раньше конца
func parseCustomHours(startStr, endStr *string) (*types.TimeString, *types.TimeString, error) {
	var startTime, endTime *types.TimeString

	if startStr != nil {
		t, err := types.NewTimeStringFromString(*startStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, *startStr)
		}
		startTime = &t
	}
	if endStr != nil {
		t, err := types.NewTimeStringFromString(*endStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, *endStr)
		}
		endTime = &t
	}

	if startTime != nil && endTime != nil && !startTime.IsBefore(*endTime) {
		return nil, nil, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, *startTime, *endTime)
	}

	return startTime, endTime, nil
}
