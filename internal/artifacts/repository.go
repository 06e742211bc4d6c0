package artifacts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/motionmix/montage-backend/internal/models"
)

// Repository is the artifact store consumed by the orchestration core. Blobs
// are addressed by bucket + key; metadata and status never live here.
type Repository interface {
	PutObject(ctx context.Context, input models.UploadInput) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error)
	RemoveObject(ctx context.Context, bucket, key string) error
	ResolveURL(ctx context.Context, bucket, key string) (string, error)
}
