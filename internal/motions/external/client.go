package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/config"
)

const defaultSubmitTimeout = 30 * time.Second

// Client talks to the hosted motion generation API. Submissions and result
// downloads use separate http.Clients: a submit is a short round trip with a
// fixed timeout, while a result download can legitimately take much longer
// and is bounded by the caller's context instead.
type Client struct {
	cfg          *config.MotionConfig
	submitClient *http.Client
	fetchClient  *http.Client
}

func NewClient(cfg *config.MotionConfig) *Client {
	timeout := defaultSubmitTimeout
	if cfg.SubmitTimeoutSec > 0 {
		timeout = time.Duration(cfg.SubmitTimeoutSec) * time.Second
	}
	return &Client{
		cfg:          cfg,
		submitClient: &http.Client{Timeout: timeout},
		fetchClient:  &http.Client{},
	}
}

type submitRequest struct {
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl"`
	CallbackURL string `json:"callBackUrl"`
}

type submitResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

// Submit starts a generation run and returns the external job id. Any error
// here means no local record may be created (fail closed).
func (c *Client) Submit(ctx context.Context, avatarURL, referenceURL string) (string, error) {
	body, err := json.Marshal(submitRequest{
		ImageURL:    avatarURL,
		VideoURL:    referenceURL,
		CallbackURL: c.cfg.CallbackURL,
	})
	if err != nil {
		return "", errors.Wrap(err, "external.Submit marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "external.Submit request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	res, err := c.submitClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "external.Submit do")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("external.Submit: unexpected status %d", res.StatusCode)
	}
	var parsed submitResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "external.Submit decode")
	}
	if parsed.Code != http.StatusOK || parsed.Data.TaskID == "" {
		return "", fmt.Errorf("external.Submit: rejected, code=%d msg=%q", parsed.Code, parsed.Msg)
	}
	return parsed.Data.TaskID, nil
}

// FetchResult streams a finished result from the URL the callback carried.
// The caller bounds the fetch with its context deadline.
func (c *Client) FetchResult(ctx context.Context, resultURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "external.FetchResult request")
	}
	res, err := c.fetchClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "external.FetchResult do")
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, 0, fmt.Errorf("external.FetchResult: unexpected status %d", res.StatusCode)
	}
	return res.Body, res.ContentLength, nil
}
