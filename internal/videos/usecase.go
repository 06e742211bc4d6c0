package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type UseCase interface {
	// CreateDownloads registers one acquisition job per not-yet-seen URL and
	// returns the existing record for URLs seen before.
	CreateDownloads(ctx context.Context, input *models.VideoDownloadInput) ([]*models.SourceVideo, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error)
	ListVideos(ctx context.Context, pq *utils.Pagination) (*models.SourceVideoList, error)
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
}
