package motions

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// Repository owns MotionJob rows. The terminal writes are conditional on the
// row still being in processing, which is what makes callback redelivery a
// no-op at the storage layer.
type Repository interface {
	Create(ctx context.Context, motion *models.MotionJob) (*models.MotionJob, error)
	GetByID(ctx context.Context, motionID uuid.UUID) (*models.MotionJob, error)
	GetByExternalJobID(ctx context.Context, externalJobID string) (*models.MotionJob, error)
	// FindSuccessByPair is the (avatar, reference) result cache lookup.
	FindSuccessByPair(ctx context.Context, avatarID, referenceID uuid.UUID) (*models.MotionJob, error)
	List(ctx context.Context, pq *utils.Pagination) (*models.MotionJobList, error)
	// CompleteSuccess applies the success terminal transition; it reports
	// false when the row was not in processing (already terminal).
	CompleteSuccess(ctx context.Context, motionID uuid.UUID, videoKey, thumbnailKey string) (bool, error)
	// CompleteFailed applies the failed terminal transition under the same
	// processing-only condition.
	CompleteFailed(ctx context.Context, motionID uuid.UUID, errLog string) (bool, error)
	Delete(ctx context.Context, motionID uuid.UUID) error
}
