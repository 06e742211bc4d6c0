package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/tracks"
	"github.com/motionmix/montage-backend/pkg/utils"
)

const uniqueViolationCode = "23505"

// ErrNameTaken is returned when the track name unique constraint fires.
var ErrNameTaken = errors.New("track name already exists")

type trackRepo struct {
	db *sqlx.DB
}

func NewTrackRepo(db *sqlx.DB) tracks.Repository {
	return &trackRepo{db: db}
}

func (t *trackRepo) Create(ctx context.Context, track *models.AudioTrack) (*models.AudioTrack, error) {
	created := &models.AudioTrack{}
	if err := t.db.QueryRowxContext(
		ctx,
		createTrackQuery,
		track.Name,
		track.Artist,
		track.StorageKey,
		track.MimeType,
		track.SizeBytes,
		models.TrackStatusProcessing,
	).StructScan(created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrNameTaken
		}
		return nil, errors.Wrap(err, "trackRepo.Create")
	}
	return created, nil
}

func (t *trackRepo) GetByID(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error) {
	track := &models.AudioTrack{}
	if err := t.db.QueryRowxContext(ctx, getTrackByIDQuery, trackID).StructScan(track); err != nil {
		return nil, errors.Wrap(err, "trackRepo.GetByID")
	}
	return track, nil
}

func (t *trackRepo) ClaimProcessing(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error) {
	track := &models.AudioTrack{}
	if err := t.db.QueryRowxContext(ctx, claimProcessingTrackQuery, trackID).StructScan(track); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "trackRepo.ClaimProcessing")
	}
	return track, nil
}

func (t *trackRepo) List(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error) {
	var totalCount int
	if err := t.db.GetContext(ctx, &totalCount, getTotalTracksQuery, search); err != nil {
		return nil, errors.Wrap(err, "trackRepo.List count")
	}
	if totalCount == 0 {
		return &models.AudioTrackList{
			Tracks:   make([]*models.AudioTrack, 0),
			Page:     pq.GetPage(),
			PageSize: pq.GetSize(),
		}, nil
	}
	rows, err := t.db.QueryxContext(ctx, listTracksQuery, search, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "trackRepo.List")
	}
	defer rows.Close()
	list := make([]*models.AudioTrack, 0, pq.GetSize())
	for rows.Next() {
		var track models.AudioTrack
		if err = rows.StructScan(&track); err != nil {
			return nil, errors.Wrap(err, "trackRepo.List scan")
		}
		list = append(list, &track)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "trackRepo.List rows")
	}
	return &models.AudioTrackList{
		Tracks:     list,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (t *trackRepo) MarkActive(ctx context.Context, trackID uuid.UUID, durationSeconds int64) error {
	if _, err := t.db.ExecContext(ctx, markTrackActiveQuery, trackID, durationSeconds); err != nil {
		return errors.Wrap(err, "trackRepo.MarkActive")
	}
	return nil
}

func (t *trackRepo) MarkInactive(ctx context.Context, trackID uuid.UUID) error {
	res, err := t.db.ExecContext(ctx, markTrackInactiveQuery, trackID)
	if err != nil {
		return errors.Wrap(err, "trackRepo.MarkInactive")
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (t *trackRepo) HardDelete(ctx context.Context, trackID uuid.UUID) error {
	if _, err := t.db.ExecContext(ctx, hardDeleteTrackQuery, trackID); err != nil {
		return errors.Wrap(err, "trackRepo.HardDelete")
	}
	return nil
}
