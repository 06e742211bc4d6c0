package montages

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// Repository owns MontageJob rows. Claim and terminal writes are conditional
// updates so a job is composited at most once no matter how often its task is
// delivered.
type Repository interface {
	Create(ctx context.Context, montage *models.MontageJob) (*models.MontageJob, error)
	GetByID(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error)
	List(ctx context.Context, pq *utils.Pagination) (*models.MontageJobList, error)
	// ClaimPending atomically moves pending to processing. It returns nil
	// when the row is not claimable (already claimed, terminal or gone).
	ClaimPending(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error)
	MarkCompleted(ctx context.Context, montageID uuid.UUID, resultKey string) error
	MarkFailed(ctx context.Context, montageID uuid.UUID, errLog string) error
	Delete(ctx context.Context, montageID uuid.UUID) error
}
