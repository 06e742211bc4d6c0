package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/videos"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{db: db}
}

func (v *videoRepo) Create(ctx context.Context, videoFile *models.SourceVideo) (*models.SourceVideo, error) {
	video := &models.SourceVideo{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		videoFile.OriginURL,
		models.VideoStatusPending,
	).StructScan(video); err != nil {
		return nil, errors.Wrap(err, "videoRepo.Create")
	}
	return video, nil
}

func (v *videoRepo) GetByID(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error) {
	video := &models.SourceVideo{}
	if err := v.db.QueryRowxContext(ctx, getVideoByIDQuery, videoID).StructScan(video); err != nil {
		return nil, errors.Wrap(err, "videoRepo.GetByID")
	}
	return video, nil
}

func (v *videoRepo) GetByOriginURL(ctx context.Context, originURL string) (*models.SourceVideo, error) {
	video := &models.SourceVideo{}
	if err := v.db.QueryRowxContext(ctx, getVideoByOriginURLQuery, originURL).StructScan(video); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "videoRepo.GetByOriginURL")
	}
	return video, nil
}

func (v *videoRepo) List(ctx context.Context, pq *utils.Pagination) (*models.SourceVideoList, error) {
	var totalCount int
	if err := v.db.GetContext(ctx, &totalCount, getTotalVideosQuery); err != nil {
		return nil, errors.Wrap(err, "videoRepo.List count")
	}
	if totalCount == 0 {
		return &models.SourceVideoList{
			Videos:   make([]*models.SourceVideo, 0),
			Page:     pq.GetPage(),
			PageSize: pq.GetSize(),
		}, nil
	}
	rows, err := v.db.QueryxContext(ctx, listVideosQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "videoRepo.List")
	}
	defer rows.Close()
	list := make([]*models.SourceVideo, 0, pq.GetSize())
	for rows.Next() {
		var video models.SourceVideo
		if err = rows.StructScan(&video); err != nil {
			return nil, errors.Wrap(err, "videoRepo.List scan")
		}
		list = append(list, &video)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "videoRepo.List rows")
	}
	return &models.SourceVideoList{
		Videos:     list,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (v *videoRepo) ClaimPending(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error) {
	video := &models.SourceVideo{}
	if err := v.db.QueryRowxContext(ctx, claimPendingVideoQuery, videoID).StructScan(video); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "videoRepo.ClaimPending")
	}
	return video, nil
}

func (v *videoRepo) MarkDownloaded(ctx context.Context, videoID uuid.UUID, storageKey, thumbnailKey string) error {
	if _, err := v.db.ExecContext(ctx, markVideoDownloadedQuery, videoID, storageKey, thumbnailKey); err != nil {
		return errors.Wrap(err, "videoRepo.MarkDownloaded")
	}
	return nil
}

func (v *videoRepo) MarkFailed(ctx context.Context, videoID uuid.UUID, errLog string) error {
	if _, err := v.db.ExecContext(ctx, markVideoFailedQuery, videoID, models.TruncateError(errLog)); err != nil {
		return errors.Wrap(err, "videoRepo.MarkFailed")
	}
	return nil
}

func (v *videoRepo) SoftDelete(ctx context.Context, videoID uuid.UUID) error {
	res, err := v.db.ExecContext(ctx, softDeleteVideoQuery, videoID)
	if err != nil {
		return errors.Wrap(err, "videoRepo.SoftDelete")
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return sql.ErrNoRows
	}
	return nil
}
