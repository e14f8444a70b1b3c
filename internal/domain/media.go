package domain

import "time"

// MaxFileSize is the largest accepted upload (10 MiB).
const MaxFileSize = 10 << 20

// allowedContentTypes is the set of accepted upload content types.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// IsAllowedContentType checks whether the given content type may be uploaded.
func IsAllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}

// MediaFile holds the metadata of an uploaded file. The bytes live in blob
// storage under StorageKey.
type MediaFile struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"storage_key"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
