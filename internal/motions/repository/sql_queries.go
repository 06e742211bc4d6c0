package repository

const (
	createMotionQuery = `INSERT INTO motion_jobs (avatar_id, reference_id, external_job_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING *`

	getMotionByIDQuery = `SELECT motion_id, avatar_id, reference_id, external_job_id,
		result_video_key, result_thumbnail_key, status, error_log, created_at
		FROM motion_jobs
		WHERE motion_id = $1`

	getMotionByExternalJobIDQuery = `SELECT motion_id, avatar_id, reference_id, external_job_id,
		result_video_key, result_thumbnail_key, status, error_log, created_at
		FROM motion_jobs
		WHERE external_job_id = $1`

	findSuccessByPairQuery = `SELECT motion_id, avatar_id, reference_id, external_job_id,
		result_video_key, result_thumbnail_key, status, error_log, created_at
		FROM motion_jobs
		WHERE avatar_id = $1 AND reference_id = $2 AND status = 'success'
		ORDER BY created_at DESC
		LIMIT 1`

	getTotalMotionsQuery = `SELECT COUNT(motion_id) FROM motion_jobs`

	listMotionsQuery = `SELECT motion_id, avatar_id, reference_id, external_job_id,
		result_video_key, result_thumbnail_key, status, error_log, created_at
		FROM motion_jobs
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`

	completeMotionSuccessQuery = `UPDATE motion_jobs
		SET status = 'success', result_video_key = $2, result_thumbnail_key = $3, error_log = ''
		WHERE motion_id = $1 AND status = 'processing'`

	completeMotionFailedQuery = `UPDATE motion_jobs
		SET status = 'failed', error_log = $2
		WHERE motion_id = $1 AND status = 'processing'`

	deleteMotionQuery = `DELETE FROM motion_jobs WHERE motion_id = $1`
)
