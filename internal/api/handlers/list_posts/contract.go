package list_posts

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

type PostService interface {
	List(ctx context.Context) (*models.PostListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
