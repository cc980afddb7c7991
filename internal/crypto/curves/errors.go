package curves

import "fmt"

// ParamError reports an unusable curve parameter.
// It names the parameter so that callers can point the user at the bad input.
type ParamError struct {
	Param  string
	Value  string
	Reason string
	Err    error
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Param)
	if e.Value != "" {
		msg += fmt.Sprintf(" %s", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors unwrap to the sentinel error.
func (e *ParamError) Cause() error {
	return e.Err
}
