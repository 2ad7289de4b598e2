package models

import "time"

// Health is the health endpoint payload.
type Health struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
