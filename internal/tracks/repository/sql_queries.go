package repository

const (
	createTrackQuery = `INSERT INTO audio_tracks (name, artist, storage_key, mime_type, size_bytes, status)
					VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`

	getTrackByIDQuery = `SELECT track_id, name, artist, duration_seconds, storage_key, mime_type, size_bytes, status, created_at
					FROM audio_tracks WHERE track_id = $1`

	claimProcessingTrackQuery = `UPDATE audio_tracks SET status = 'processing'
					WHERE track_id = $1 AND status = 'processing' RETURNING *`

	getTotalTracksQuery = `SELECT COUNT(track_id) FROM audio_tracks
					WHERE status = 'active' AND (name ILIKE '%' || $1 || '%' OR artist ILIKE '%' || $1 || '%')`

	listTracksQuery = `SELECT track_id, name, artist, duration_seconds, storage_key, mime_type, size_bytes, status, created_at
					FROM audio_tracks
					WHERE status = 'active' AND (name ILIKE '%' || $1 || '%' OR artist ILIKE '%' || $1 || '%')
					ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	markTrackActiveQuery = `UPDATE audio_tracks SET status = 'active', duration_seconds = $2
					WHERE track_id = $1 AND status = 'processing'`

	markTrackInactiveQuery = `UPDATE audio_tracks SET status = 'inactive' WHERE track_id = $1`

	hardDeleteTrackQuery = `DELETE FROM audio_tracks WHERE track_id = $1`
)
