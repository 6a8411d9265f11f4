package task

import "fmt"

// TimeoutError indicates the polling budget ran out before the task
// reached a terminal state.
type TimeoutError struct {
	URI string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s did not finish within the polling budget", e.URI)
}

// FailedError indicates the task reached a terminal state without
// success. Reason is the failure text from the task result payload.
type FailedError struct {
	Reason string
}

// Error implements the error interface
func (e *FailedError) Error() string {
	return "task failed: " + e.Reason
}
