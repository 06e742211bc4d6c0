package repository

const (
	createAvatarQuery = `INSERT INTO avatars (storage_key, source_type)
					VALUES ($1, $2) RETURNING *`

	getAvatarByIDQuery = `SELECT avatar_id, storage_key, source_type, created_at
					FROM avatars WHERE avatar_id = $1`

	listAvatarsQuery = `SELECT avatar_id, storage_key, source_type, created_at
					FROM avatars ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	deleteAvatarQuery = `DELETE FROM avatars WHERE avatar_id = $1`
)
