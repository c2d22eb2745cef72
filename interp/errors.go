package interp

import (
	"fmt"
)

// DivisionByZeroError aborts evaluation of Dividend / 0.
type DivisionByZeroError struct {
	Dividend int64
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero: %d / 0", e.Dividend)
}

// StepError wraps a failure of one reduction. The configuration is left as it
// was before the failed step.
type StepError struct {
	Step  int
	Frame string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d [%s]: %v", e.Step, e.Frame, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepLimitError is returned when a run needs more than Limit steps.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit exceeded: program did not terminate within %d steps", e.Limit)
}

// CycleError is returned when the configuration after Step equals the one
// after FirstSeen; the machine is deterministic so it can never terminate.
type CycleError struct {
	Step      int
	FirstSeen int
	Repeated  Snapshot
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("non-termination: configuration at step %d repeats step %d", e.Step, e.FirstSeen)
}
