// Package pipeline provides the high-level orchestration of a shopping
// research session: collect, score, select, enrich, report.
package pipeline

import "fmt"

// State names one stage of the session state machine. Transitions run
// strictly forward; Failed is terminal and reachable from any state.
type State string

// Pipeline states.
const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateScoring    State = "scoring"
	StateSelecting  State = "selecting"
	StateEnriching  State = "enriching"
	StateReporting  State = "reporting"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// StageError is a pipeline-level failure tagged with the stage whose
// precondition was left unmet.
type StageError struct {
	Stage  State
	Reason string
	Cause  error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pipeline failed during %s: %s: %v", e.Stage, e.Reason, e.Cause)
	}
	return fmt.Sprintf("pipeline failed during %s: %s", e.Stage, e.Reason)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   State  `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)
