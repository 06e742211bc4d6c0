package files

import "context"

// ArtifactKind selects which bucket a stored key resolves against. Every
// record in the API carries raw storage keys; a kind plus a key is all a
// client needs to reach the blob itself.
type ArtifactKind string

const (
	KindVideo   ArtifactKind = "video"
	KindAudio   ArtifactKind = "audio"
	KindMotion  ArtifactKind = "motion"
	KindMontage ArtifactKind = "montage"
	KindAvatar  ArtifactKind = "avatar"
)

type UseCase interface {
	// ResolveFileURL returns a time-limited download URL for a stored
	// artifact. The URL is self-authorizing; the store itself stays private.
	ResolveFileURL(ctx context.Context, kind ArtifactKind, key string) (string, error)
}
