package external

import (
	"encoding/json"
	"fmt"
)

// Notification is the callback body the generation service delivers. The
// shape is owned by the external service and parsed defensively: anything
// missing or malformed downgrades to a warning, never a crash.
type Notification struct {
	Code int              `json:"code"`
	Msg  string           `json:"msg"`
	Data NotificationData `json:"data"`
}

type NotificationData struct {
	TaskID string `json:"taskId"`
	State  string `json:"state"`
	// ResultJSON is a JSON document embedded as a string.
	ResultJSON string `json:"resultJson"`
	FailMsg    string `json:"failMsg"`
}

const (
	StateSuccess = "success"
	StateFail    = "fail"
)

type resultPayload struct {
	ResultURLs []string `json:"resultUrls"`
}

// ParseResultURL extracts the first result media URL from the embedded
// result document.
func ParseResultURL(resultJSON string) (string, error) {
	if resultJSON == "" {
		return "", fmt.Errorf("empty resultJson")
	}
	var payload resultPayload
	if err := json.Unmarshal([]byte(resultJSON), &payload); err != nil {
		return "", fmt.Errorf("malformed resultJson: %w", err)
	}
	if len(payload.ResultURLs) == 0 || payload.ResultURLs[0] == "" {
		return "", fmt.Errorf("resultJson carries no result url")
	}
	return payload.ResultURLs[0], nil
}
