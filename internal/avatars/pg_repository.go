package avatars

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type Repository interface {
	Create(ctx context.Context, avatar *models.Avatar) (*models.Avatar, error)
	GetByID(ctx context.Context, avatarID uuid.UUID) (*models.Avatar, error)
	List(ctx context.Context, pq *utils.Pagination) ([]*models.Avatar, error)
	Delete(ctx context.Context, avatarID uuid.UUID) error
}
