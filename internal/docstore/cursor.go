package docstore

import (
	"encoding/base64"
	"encoding/json"

	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// pageCursor marks the last row of a page so the next page can resume after
// it. The encoded form is opaque to callers and must be echoed back unchanged.
type pageCursor struct {
	PartitionKey string `json:"pk"`
	ID           string `json:"id"`
}

func encodeCursor(c pageCursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string) (pageCursor, error) {
	var c pageCursor
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, apperrors.Validation("invalid pagination cursor")
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, apperrors.Validation("invalid pagination cursor")
	}
	return c, nil
}
