package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// Repository owns SourceVideo rows. Status lives here and only here; the
// artifact store is never consulted for job state.
type Repository interface {
	Create(ctx context.Context, video *models.SourceVideo) (*models.SourceVideo, error)
	GetByID(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error)
	// GetByOriginURL looks up the newest non-deleted row for the URL; it is
	// the dedup check for repeated acquisition requests.
	GetByOriginURL(ctx context.Context, originURL string) (*models.SourceVideo, error)
	List(ctx context.Context, pq *utils.Pagination) (*models.SourceVideoList, error)
	// ClaimPending atomically moves pending to processing. It returns nil
	// when the row is not claimable (already claimed, terminal or gone).
	ClaimPending(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error)
	MarkDownloaded(ctx context.Context, videoID uuid.UUID, storageKey, thumbnailKey string) error
	MarkFailed(ctx context.Context, videoID uuid.UUID, errLog string) error
	SoftDelete(ctx context.Context, videoID uuid.UUID) error
}
