package models

import "time"

// ExecutionStatus represents the status of a command execution.
type ExecutionStatus string

const (
	// StatusPending indicates the execution is recorded but not yet started.
	StatusPending ExecutionStatus = "pending"
	// StatusRunning indicates the external process is running.
	StatusRunning ExecutionStatus = "running"
	// StatusSuccess indicates the process exited with status zero.
	StatusSuccess ExecutionStatus = "success"
	// StatusError indicates the process failed to launch or exited non-zero.
	StatusError ExecutionStatus = "error"
)

// Terminal reports whether the status is a final state.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// ExecutionLog records one invocation attempt of a command. The command name
// is denormalized at execution start so later renames or deletions of the
// command do not corrupt history.
type ExecutionLog struct {
	ID          string          `json:"id"`
	CommandID   string          `json:"commandId"`
	CommandName string          `json:"commandName"`
	RequestedBy string          `json:"requestedBy"`
	Status      ExecutionStatus `json:"status"`
	Output      string          `json:"output"`
	Error       string          `json:"error,omitempty"`
	Parameters  []string        `json:"parameters"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
}

// ExecuteRequest is the body of an execute call. A nil Parameters list means
// "use the command's stored default arguments".
type ExecuteRequest struct {
	Parameters []string `json:"parameters"`
}
