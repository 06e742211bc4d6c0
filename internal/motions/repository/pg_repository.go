package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type motionRepo struct {
	db *sqlx.DB
}

func NewMotionRepo(db *sqlx.DB) motions.Repository {
	return &motionRepo{db: db}
}

func (m *motionRepo) Create(ctx context.Context, motion *models.MotionJob) (*models.MotionJob, error) {
	created := &models.MotionJob{}
	if err := m.db.QueryRowxContext(
		ctx,
		createMotionQuery,
		motion.AvatarID,
		motion.ReferenceID,
		motion.ExternalJobID,
		models.JobStatusProcessing,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "motionRepo.Create")
	}
	return created, nil
}

func (m *motionRepo) GetByID(ctx context.Context, motionID uuid.UUID) (*models.MotionJob, error) {
	motion := &models.MotionJob{}
	if err := m.db.QueryRowxContext(ctx, getMotionByIDQuery, motionID).StructScan(motion); err != nil {
		return nil, errors.Wrap(err, "motionRepo.GetByID")
	}
	return motion, nil
}

func (m *motionRepo) GetByExternalJobID(ctx context.Context, externalJobID string) (*models.MotionJob, error) {
	motion := &models.MotionJob{}
	if err := m.db.QueryRowxContext(ctx, getMotionByExternalJobIDQuery, externalJobID).StructScan(motion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "motionRepo.GetByExternalJobID")
	}
	return motion, nil
}

func (m *motionRepo) FindSuccessByPair(ctx context.Context, avatarID, referenceID uuid.UUID) (*models.MotionJob, error) {
	motion := &models.MotionJob{}
	if err := m.db.QueryRowxContext(ctx, findSuccessByPairQuery, avatarID, referenceID).StructScan(motion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "motionRepo.FindSuccessByPair")
	}
	return motion, nil
}

func (m *motionRepo) List(ctx context.Context, pq *utils.Pagination) (*models.MotionJobList, error) {
	var totalCount int
	if err := m.db.GetContext(ctx, &totalCount, getTotalMotionsQuery); err != nil {
		return nil, errors.Wrap(err, "motionRepo.List count")
	}
	if totalCount == 0 {
		return &models.MotionJobList{
			Motions:  make([]*models.MotionJob, 0),
			Page:     pq.GetPage(),
			PageSize: pq.GetSize(),
		}, nil
	}
	rows, err := m.db.QueryxContext(ctx, listMotionsQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "motionRepo.List")
	}
	defer rows.Close()
	list := make([]*models.MotionJob, 0, pq.GetSize())
	for rows.Next() {
		var motion models.MotionJob
		if err = rows.StructScan(&motion); err != nil {
			return nil, errors.Wrap(err, "motionRepo.List scan")
		}
		list = append(list, &motion)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "motionRepo.List rows")
	}
	return &models.MotionJobList{
		Motions:    list,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (m *motionRepo) CompleteSuccess(ctx context.Context, motionID uuid.UUID, videoKey, thumbnailKey string) (bool, error) {
	res, err := m.db.ExecContext(ctx, completeMotionSuccessQuery, motionID, videoKey, thumbnailKey)
	if err != nil {
		return false, errors.Wrap(err, "motionRepo.CompleteSuccess")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "motionRepo.CompleteSuccess rows")
	}
	return count > 0, nil
}

func (m *motionRepo) CompleteFailed(ctx context.Context, motionID uuid.UUID, errLog string) (bool, error) {
	res, err := m.db.ExecContext(ctx, completeMotionFailedQuery, motionID, models.TruncateError(errLog))
	if err != nil {
		return false, errors.Wrap(err, "motionRepo.CompleteFailed")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "motionRepo.CompleteFailed rows")
	}
	return count > 0, nil
}

func (m *motionRepo) Delete(ctx context.Context, motionID uuid.UUID) error {
	res, err := m.db.ExecContext(ctx, deleteMotionQuery, motionID)
	if err != nil {
		return errors.Wrap(err, "motionRepo.Delete")
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return sql.ErrNoRows
	}
	return nil
}
