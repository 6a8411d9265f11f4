// Package task resolves the server's asynchronous operations. Mutations
// the server executes out-of-band answer with a task handle; Await polls
// the handle until it reaches a terminal state or the polling budget runs
// out, then resolves to the produced entity.
package task

import (
	"encoding/xml"

	"github.com/s0up4200/restvc/hypermedia"
)

// State is the lifecycle tag of a server-side task.
type State string

const (
	StatePending  State = "Pending"
	StateRunning  State = "Running"
	StateFinished State = "Finished"
	StateFailed   State = "Failed"
)

// Result carries the outcome of a finished task. Message holds the
// failure reason when Success is false.
type Result struct {
	Success bool   `xml:"Success" json:"success"`
	Message string `xml:"Message,omitempty" json:"message,omitempty"`
}

// Task is the server-side handle for one asynchronous operation. It is
// polled to completion and discarded afterwards, never cached.
type Task struct {
	XMLName   xml.Name            `xml:"Task" json:"-"`
	ID        string              `xml:"TaskId" json:"taskId"`
	Operation string              `xml:"Operation,omitempty" json:"operation,omitempty"`
	State     State               `xml:"State" json:"state"`
	Result    *Result             `xml:"Result,omitempty" json:"result,omitempty"`
	Links     hypermedia.LinkList `xml:"Links" json:"links"`
}

// Terminal reports whether the task has stopped progressing.
func (t *Task) Terminal() bool {
	return t.State == StateFinished || t.State == StateFailed
}

// Failed reports whether the task stopped without success.
func (t *Task) Failed() bool {
	if t.State == StateFailed {
		return true
	}
	return t.State == StateFinished && t.Result != nil && !t.Result.Success
}

// Reason returns the failure text carried in the task result.
func (t *Task) Reason() string {
	if t.Result != nil {
		return t.Result.Message
	}
	return string(t.State)
}
