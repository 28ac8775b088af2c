package premiere

import (
	"fmt"
	"strings"
)

// UnexpectedElementError reports a child whose name breaks the structure the
// reader depends on.
type UnexpectedElementError struct {
	Want string
	Got  string
	In   string
}

func (e *UnexpectedElementError) Error() string {
	return fmt.Sprintf("unexpected element %q in %q (want %q)", e.Got, e.In, e.Want)
}

// AggregateError is returned by Read when every attempted track group
// resolution failed. It carries one cause per attempt.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d video track group resolutions failed", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
