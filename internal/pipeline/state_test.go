package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageError_Message(t *testing.T) {
	err := &StageError{Stage: StateCollecting, Reason: "no listings collected"}
	assert.Equal(t, "pipeline failed during collecting: no listings collected", err.Error())
}

func TestStageError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := &StageError{Stage: StateScoring, Reason: "persisting ranked snapshot failed", Cause: cause}

	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
}

func TestStageError_AsTarget(t *testing.T) {
	var wrapped error = fmt.Errorf("outer: %w", &StageError{Stage: StateReporting, Reason: "x"})

	var stageErr *StageError
	assert.True(t, errors.As(wrapped, &stageErr))
	assert.Equal(t, StateReporting, stageErr.Stage)
}
