package repository

const (
	createVideoQuery = `INSERT INTO source_videos (origin_url, status)
					VALUES ($1, $2) RETURNING *`

	getVideoByIDQuery = `SELECT video_id, origin_url, storage_key, thumbnail_key, status, error_log, created_at
					FROM source_videos WHERE video_id = $1`

	getVideoByOriginURLQuery = `SELECT video_id, origin_url, storage_key, thumbnail_key, status, error_log, created_at
					FROM source_videos WHERE origin_url = $1 AND status != 'deleted'
					ORDER BY created_at DESC LIMIT 1`

	getTotalVideosQuery = `SELECT COUNT(video_id) FROM source_videos WHERE status != 'deleted'`

	listVideosQuery = `SELECT video_id, origin_url, storage_key, thumbnail_key, status, error_log, created_at
					FROM source_videos WHERE status != 'deleted'
					ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	// The claim is a single conditional write so concurrent pollers cannot
	// both take the job.
	claimPendingVideoQuery = `UPDATE source_videos SET status = 'processing'
					WHERE video_id = $1 AND status = 'pending' RETURNING *`

	markVideoDownloadedQuery = `UPDATE source_videos
					SET status = 'downloaded', storage_key = $2, thumbnail_key = $3
					WHERE video_id = $1 AND status = 'processing'`

	markVideoFailedQuery = `UPDATE source_videos SET status = 'failed', error_log = $2
					WHERE video_id = $1 AND status = 'processing'`

	softDeleteVideoQuery = `UPDATE source_videos SET status = 'deleted' WHERE video_id = $1`
)
