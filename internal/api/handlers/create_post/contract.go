package create_post

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

type PostService interface {
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.PostResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
