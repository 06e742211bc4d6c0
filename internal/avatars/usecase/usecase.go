package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/avatars"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type avatarUC struct {
	cfg        *config.Config
	avatarRepo avatars.Repository
	storeRepo  artifacts.Repository
	logger     logger.Logger
}

func NewAvatarUseCase(
	cfg *config.Config,
	avatarRepo avatars.Repository,
	storeRepo artifacts.Repository,
	log logger.Logger,
) avatars.UseCase {
	return &avatarUC{
		cfg:        cfg,
		avatarRepo: avatarRepo,
		storeRepo:  storeRepo,
		logger:     log,
	}
}

func (u *avatarUC) UploadAvatar(ctx context.Context, fileName, mimeType string, size int64, file io.Reader) (*models.Avatar, error) {
	// Re-key by a fresh id; the client filename is only mined for its
	// extension, never trusted as a storage key.
	key := fmt.Sprintf("avatar_%s%s", uuid.New().String(), path.Ext(fileName))
	_, err := u.storeRepo.PutObject(ctx, models.UploadInput{
		File:     file,
		Key:      key,
		MimeType: mimeType,
		Size:     size,
		Bucket:   u.cfg.S3.AvatarBucket,
	})
	if err != nil {
		u.logger.Errorf("UploadAvatar - PutObject: %v", err)
		return nil, httpErrors.NewInternalServerError("storage error")
	}

	avatar, err := u.avatarRepo.Create(ctx, &models.Avatar{StorageKey: key, SourceType: "upload"})
	if err != nil {
		u.logger.Errorf("UploadAvatar - Create: %v", err)
		if delErr := u.storeRepo.RemoveObject(ctx, u.cfg.S3.AvatarBucket, key); delErr != nil {
			u.logger.Errorf("UploadAvatar - RemoveObject after failed insert: %v", delErr)
		}
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return avatar, nil
}

func (u *avatarUC) GetAvatar(ctx context.Context, avatarID uuid.UUID) (*models.Avatar, error) {
	avatar, err := u.avatarRepo.GetByID(ctx, avatarID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("avatar not found")
		}
		u.logger.Errorf("GetAvatar - GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return avatar, nil
}

func (u *avatarUC) ListAvatars(ctx context.Context, pq *utils.Pagination) ([]*models.Avatar, error) {
	list, err := u.avatarRepo.List(ctx, pq)
	if err != nil {
		u.logger.Errorf("ListAvatars - List: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

func (u *avatarUC) DeleteAvatar(ctx context.Context, avatarID uuid.UUID) error {
	avatar, err := u.GetAvatar(ctx, avatarID)
	if err != nil {
		return err
	}
	if err := u.avatarRepo.Delete(ctx, avatarID); err != nil {
		u.logger.Errorf("DeleteAvatar - Delete: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	if err := u.storeRepo.RemoveObject(ctx, u.cfg.S3.AvatarBucket, avatar.StorageKey); err != nil {
		// Best effort; the row is gone and the blob is untracked.
		u.logger.Warnf("DeleteAvatar - RemoveObject: %v", err)
	}
	return nil
}
