package model

import "time"

// RunStatus is the lifecycle status of a stored capture run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusComplete  RunStatus = "complete"
	RunStatusPublished RunStatus = "published"
	RunStatusFailed    RunStatus = "failed"
)

// RunResult is the persisted outcome of a capture run.
type RunResult struct {
	Results    ResultSet  `json:"results"`
	Iterations int        `json:"iterations"`
	Sufficient bool       `json:"sufficient"`
	Documents  int        `json:"documents"`
	TokenUsage TokenUsage `json:"token_usage"`
	Published  bool       `json:"published"`
	Error      string     `json:"error,omitempty"`
}

// CaptureRun is a stored capture run record.
type CaptureRun struct {
	ID        string     `json:"id"`
	SourceDir string     `json:"source_dir"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
