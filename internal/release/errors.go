package release

import (
	"fmt"
)

// AbortedError reports the step a run stopped at and the cause
type AbortedError struct {
	Step          Step
	LastCompleted Step
	Err           error

	// RestoreErr is set when the prior branch could not be checked out again
	RestoreErr error

	// Record is the state of the release when it stopped; nil for promotion
	Record *Record
}

func (e *AbortedError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Step.Description(), e.Err)
	if e.RestoreErr != nil {
		msg += fmt.Sprintf(" (restoring the prior branch also failed: %v)", e.RestoreErr)
	}
	return msg
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}
