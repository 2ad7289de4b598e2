package models

import "github.com/logmirror/logmirror/internal/mirror"

// SyncTrigger is the response to a manual sync request.
type SyncTrigger struct {
	Changed    bool   `json:"changed"`
	BytesMoved int64  `json:"bytes_moved"`
	Anomaly    string `json:"anomaly,omitempty"`
}

// SyncStatus reports the mirror's current state and recent cycle history.
type SyncStatus struct {
	Key       string                `json:"key"`
	Watermark int64                 `json:"watermark"`
	LastError string                `json:"last_error,omitempty"`
	Last      *mirror.CycleResult   `json:"last_cycle,omitempty"`
	History   []*mirror.CycleRecord `json:"history,omitempty"`
}
