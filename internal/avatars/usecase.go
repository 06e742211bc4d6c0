package avatars

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type UseCase interface {
	UploadAvatar(ctx context.Context, fileName, mimeType string, size int64, file io.Reader) (*models.Avatar, error)
	GetAvatar(ctx context.Context, avatarID uuid.UUID) (*models.Avatar, error)
	ListAvatars(ctx context.Context, pq *utils.Pagination) ([]*models.Avatar, error)
	DeleteAvatar(ctx context.Context, avatarID uuid.UUID) error
}
