package models

import "io"

// UploadInput describes one blob put into the artifact store.
type UploadInput struct {
	File     io.Reader `json:"-"`
	Key      string    `json:"key"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	Bucket   string    `json:"bucket"`
}
