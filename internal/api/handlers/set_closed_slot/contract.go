package set_closed_slot

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/posts/models"
)

type PostService interface {
	SetClosedSlot(ctx context.Context, postID int64, req *models.SetClosedSlotRequest) (*models.PostResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
