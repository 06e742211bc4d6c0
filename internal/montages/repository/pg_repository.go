package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/montages"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type montageRepo struct {
	db *sqlx.DB
}

func NewMontageRepo(db *sqlx.DB) montages.Repository {
	return &montageRepo{db: db}
}

func (m *montageRepo) Create(ctx context.Context, montage *models.MontageJob) (*models.MontageJob, error) {
	created := &models.MontageJob{}
	if err := m.db.QueryRowxContext(
		ctx,
		createMontageQuery,
		montage.Source.Kind,
		montage.Source.ID,
		montage.TrackID,
		models.JobStatusPending,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "montageRepo.Create")
	}
	return created, nil
}

func (m *montageRepo) GetByID(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error) {
	montage := &models.MontageJob{}
	if err := m.db.QueryRowxContext(ctx, getMontageByIDQuery, montageID).StructScan(montage); err != nil {
		return nil, errors.Wrap(err, "montageRepo.GetByID")
	}
	return montage, nil
}

func (m *montageRepo) List(ctx context.Context, pq *utils.Pagination) (*models.MontageJobList, error) {
	var totalCount int
	if err := m.db.GetContext(ctx, &totalCount, getTotalMontagesQuery); err != nil {
		return nil, errors.Wrap(err, "montageRepo.List count")
	}
	if totalCount == 0 {
		return &models.MontageJobList{
			Montages: make([]*models.MontageJob, 0),
			Page:     pq.GetPage(),
			PageSize: pq.GetSize(),
		}, nil
	}
	rows, err := m.db.QueryxContext(ctx, listMontagesQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "montageRepo.List")
	}
	defer rows.Close()
	list := make([]*models.MontageJob, 0, pq.GetSize())
	for rows.Next() {
		var montage models.MontageJob
		if err = rows.StructScan(&montage); err != nil {
			return nil, errors.Wrap(err, "montageRepo.List scan")
		}
		list = append(list, &montage)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "montageRepo.List rows")
	}
	return &models.MontageJobList{
		Montages:   list,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (m *montageRepo) ClaimPending(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error) {
	montage := &models.MontageJob{}
	if err := m.db.QueryRowxContext(ctx, claimPendingMontageQuery, montageID).StructScan(montage); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "montageRepo.ClaimPending")
	}
	return montage, nil
}

func (m *montageRepo) MarkCompleted(ctx context.Context, montageID uuid.UUID, resultKey string) error {
	if _, err := m.db.ExecContext(ctx, markMontageCompletedQuery, montageID, resultKey); err != nil {
		return errors.Wrap(err, "montageRepo.MarkCompleted")
	}
	return nil
}

func (m *montageRepo) MarkFailed(ctx context.Context, montageID uuid.UUID, errLog string) error {
	if _, err := m.db.ExecContext(ctx, markMontageFailedQuery, montageID, models.TruncateError(errLog)); err != nil {
		return errors.Wrap(err, "montageRepo.MarkFailed")
	}
	return nil
}

func (m *montageRepo) Delete(ctx context.Context, montageID uuid.UUID) error {
	res, err := m.db.ExecContext(ctx, deleteMontageQuery, montageID)
	if err != nil {
		return errors.Wrap(err, "montageRepo.Delete")
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return sql.ErrNoRows
	}
	return nil
}
