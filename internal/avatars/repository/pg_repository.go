package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/avatars"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type avatarRepo struct {
	db *sqlx.DB
}

func NewAvatarRepo(db *sqlx.DB) avatars.Repository {
	return &avatarRepo{db: db}
}

func (a *avatarRepo) Create(ctx context.Context, avatar *models.Avatar) (*models.Avatar, error) {
	created := &models.Avatar{}
	if err := a.db.QueryRowxContext(
		ctx,
		createAvatarQuery,
		avatar.StorageKey,
		avatar.SourceType,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "avatarRepo.Create")
	}
	return created, nil
}

func (a *avatarRepo) GetByID(ctx context.Context, avatarID uuid.UUID) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	if err := a.db.QueryRowxContext(ctx, getAvatarByIDQuery, avatarID).StructScan(avatar); err != nil {
		return nil, errors.Wrap(err, "avatarRepo.GetByID")
	}
	return avatar, nil
}

func (a *avatarRepo) List(ctx context.Context, pq *utils.Pagination) ([]*models.Avatar, error) {
	rows, err := a.db.QueryxContext(ctx, listAvatarsQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "avatarRepo.List")
	}
	defer rows.Close()
	list := make([]*models.Avatar, 0, pq.GetSize())
	for rows.Next() {
		var avatar models.Avatar
		if err = rows.StructScan(&avatar); err != nil {
			return nil, errors.Wrap(err, "avatarRepo.List scan")
		}
		list = append(list, &avatar)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "avatarRepo.List rows")
	}
	return list, nil
}

func (a *avatarRepo) Delete(ctx context.Context, avatarID uuid.UUID) error {
	res, err := a.db.ExecContext(ctx, deleteAvatarQuery, avatarID)
	if err != nil {
		return errors.Wrap(err, "avatarRepo.Delete")
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return sql.ErrNoRows
	}
	return nil
}
