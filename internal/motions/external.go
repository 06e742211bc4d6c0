package motions

import (
	"context"
	"io"
)

// GenerationClient is the external motion generation service. Submit returns
// the service-side job id used to correlate the asynchronous callback;
// FetchResult retrieves a finished result from the URL the callback carried,
// so it can be re-hosted under local custody before the external link dies.
type GenerationClient interface {
	Submit(ctx context.Context, avatarURL, referenceURL string) (string, error)
	FetchResult(ctx context.Context, resultURL string) (io.ReadCloser, int64, error)
}
