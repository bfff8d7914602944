package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotOnStep          = errors.New("selection does not belong to the current step")
	ErrUnknownSelection   = errors.New("selected value is not in the catalog")
	ErrAtFirstStep        = errors.New("already at the first step")
	ErrNotCollecting      = errors.New("wizard is not collecting data")
	ErrNotConfirming      = errors.New("wizard is not waiting for confirmation")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// ValidationError is returned by Forward when the current step holds an invalid value. Fields
// maps the offending field to a user-facing message.
type ValidationError struct {
	Step   Step
	Fields map[string]any
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return fmt.Sprintf("validating step %s: invalid %s", e.Step, strings.Join(keys, ", "))
}
