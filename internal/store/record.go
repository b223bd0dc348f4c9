package store

import "time"

// Status is the outcome of a recorded build.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// BuildRecord is one row of the builds table.
type BuildRecord struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	Fingerprint   string    `json:"fingerprint"`
	Source        string    `json:"source"`
	Target        string    `json:"target"`
	Toolchain     string    `json:"toolchain"`
	PanicStrategy string    `json:"panic_strategy"`
	Capabilities  []string  `json:"capabilities"`
	Extensions    []string  `json:"extensions"`
	Destination   string    `json:"destination,omitempty"`
	Artifact      string    `json:"artifact,omitempty"`
	Size          int64     `json:"size,omitempty"`
	SHA256        string    `json:"sha256,omitempty"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
