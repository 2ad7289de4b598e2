package mirror

import "time"

// Anomaly values surfaced on a CycleResult.
const (
	// AnomalyRemoteShrank means the remote object is smaller than the local
	// mirror. The cycle becomes a no-op; the next cycle may recover if the
	// remote catches back up.
	AnomalyRemoteShrank = "remote_shrank"
)

// CycleResult is the outcome of one sync cycle.
type CycleResult struct {
	Changed     bool          `json:"changed"`
	BytesMoved  int64         `json:"bytes_moved"`
	RemoteSize  int64         `json:"remote_size"`
	LocalSize   int64         `json:"local_size"`
	Anomaly     string        `json:"anomaly,omitempty"`
	Took        time.Duration `json:"-"`
	CompletedAt time.Time     `json:"completed_at"`
}

// Status is a point-in-time view of the syncer for callers and the HTTP
// surface. LastResult is nil until a cycle has completed successfully.
type Status struct {
	Key        string       `json:"key"`
	Watermark  int64        `json:"watermark"`
	LastResult *CycleResult `json:"last_result,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
}
