package update_post

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

type PostService interface {
	Update(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.PostResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
