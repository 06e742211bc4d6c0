package motions

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/motions/external"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// Callback status tokens. The callback endpoint always acknowledges with one
// of these; business outcomes never surface as HTTP failure codes.
const (
	CallbackOK               = "ok"
	CallbackIgnored          = "ignored"
	CallbackUnknown          = "unknown"
	CallbackAlreadyProcessed = "already_processed"
)

type UseCase interface {
	// CreateMotion resolves both inputs, submits to the generation service
	// and persists the job as processing with its external id. A prior
	// success for the same (avatar, reference) pair is returned unchanged.
	CreateMotion(ctx context.Context, input *models.MotionCreateInput) (*models.MotionJob, error)
	GetMotion(ctx context.Context, motionID uuid.UUID) (*models.MotionJob, error)
	ListMotions(ctx context.Context, pq *utils.Pagination) (*models.MotionJobList, error)
	DeleteMotion(ctx context.Context, motionID uuid.UUID) error
	// HandleCallback reconciles an inbound notification and returns the
	// status token to acknowledge with. Redelivery is a no-op.
	HandleCallback(ctx context.Context, note *external.Notification) (string, error)
}
