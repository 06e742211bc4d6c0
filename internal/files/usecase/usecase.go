package usecase

import (
	"context"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/files"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
)

type fileUC struct {
	cfg       *config.Config
	storeRepo artifacts.Repository
	logger    logger.Logger
}

func NewFileUseCase(cfg *config.Config, storeRepo artifacts.Repository, log logger.Logger) files.UseCase {
	return &fileUC{cfg: cfg, storeRepo: storeRepo, logger: log}
}

func (u *fileUC) ResolveFileURL(ctx context.Context, kind files.ArtifactKind, key string) (string, error) {
	if key == "" {
		return "", httpErrors.NewBadRequestError("file key is required")
	}
	bucket, ok := u.bucketFor(kind)
	if !ok {
		return "", httpErrors.NewBadRequestError("unknown artifact kind")
	}
	url, err := u.storeRepo.ResolveURL(ctx, bucket, key)
	if err != nil {
		u.logger.Errorf("ResolveFileURL - %s/%s: %v", bucket, key, err)
		return "", httpErrors.NewInternalServerError("storage error")
	}
	return url, nil
}

func (u *fileUC) bucketFor(kind files.ArtifactKind) (string, bool) {
	switch kind {
	case files.KindVideo:
		return u.cfg.S3.VideoBucket, true
	case files.KindAudio:
		return u.cfg.S3.AudioBucket, true
	case files.KindMotion:
		return u.cfg.S3.MotionBucket, true
	case files.KindMontage:
		return u.cfg.S3.MontageBucket, true
	case files.KindAvatar:
		return u.cfg.S3.AvatarBucket, true
	}
	return "", false
}
