package montages

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type UseCase interface {
	// CreateMontage verifies the referenced source artifact and track are
	// ready, then registers the job and queues it for compositing.
	CreateMontage(ctx context.Context, input *models.MontageCreateInput) (*models.MontageJob, error)
	GetMontage(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error)
	ListMontages(ctx context.Context, pq *utils.Pagination) (*models.MontageJobList, error)
	DeleteMontage(ctx context.Context, montageID uuid.UUID) error
}
