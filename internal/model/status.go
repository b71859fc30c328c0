package model

// TaskStatus represents the lifecycle state of a download task
type TaskStatus string

const (
	// TaskStatusIdle means the task has been created but not started
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusResolving means the metadata-only resolution pass is running
	TaskStatusResolving TaskStatus = "Resolving"

	// TaskStatusFetching means the real download is in progress
	TaskStatusFetching TaskStatus = "Fetching"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusFailed means the task failed with an error
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCancelled means the task was cancelled by the user
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusResolving || ts == TaskStatusFetching
}

// IsFinished returns true if the task is in a terminal state (completed,
// failed, or cancelled)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed || ts == TaskStatusCancelled
}
