package repository

// The source tagged union is stored as (source_kind, source_id); the aliases
// map the columns back onto the nested struct for sqlx.
const (
	montageColumns = `montage_id, source_kind AS "source.source_kind", source_id AS "source.source_id",
		track_id, result_key, status, error_log, created_at`

	createMontageQuery = `INSERT INTO montage_jobs (source_kind, source_id, track_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + montageColumns

	getMontageByIDQuery = `SELECT ` + montageColumns + `
		FROM montage_jobs
		WHERE montage_id = $1`

	getTotalMontagesQuery = `SELECT COUNT(montage_id) FROM montage_jobs`

	listMontagesQuery = `SELECT ` + montageColumns + `
		FROM montage_jobs
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`

	claimPendingMontageQuery = `UPDATE montage_jobs
		SET status = 'processing'
		WHERE montage_id = $1 AND status = 'pending'
		RETURNING ` + montageColumns

	markMontageCompletedQuery = `UPDATE montage_jobs
		SET status = 'completed', result_key = $2, error_log = ''
		WHERE montage_id = $1 AND status = 'processing'`

	markMontageFailedQuery = `UPDATE montage_jobs
		SET status = 'failed', error_log = $2
		WHERE montage_id = $1 AND status = 'processing'`

	deleteMontageQuery = `DELETE FROM montage_jobs WHERE montage_id = $1`
)
