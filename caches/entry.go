package caches

import (
	"encoding/json"
	"time"
)

// Entry is one cached synthesis result. Entries are written whole and
// replaced whole; there are no merge semantics.
type Entry struct {
	Fingerprint     string          `json:"fingerprint"`
	Source          string          `json:"source"`
	Model           string          `json:"model,omitempty"`
	TemplateVersion string          `json:"template_version,omitempty"`
	Sampling        json.RawMessage `json:"sampling,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
