package models

import (
	"encoding/json"
	"time"
)

// Setting is a single service-configuration document. Values are encrypted
// at rest; the JSON exposed here is the decrypted document.
type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedBy string          `json:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type UpdateSettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}
