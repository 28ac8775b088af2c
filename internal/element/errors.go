package element

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// Kind distinguishes missing elements from missing attributes.
type Kind int

const (
	// KindElement marks a missing child element.
	KindElement Kind = iota
	// KindAttribute marks a missing attribute.
	KindAttribute
)

func (k Kind) String() string {
	if k == KindAttribute {
		return "attribute"
	}
	return "element"
}

// NotFoundError reports a required child or attribute that is absent.
type NotFoundError struct {
	Kind Kind
	Name string
	In   *Element
}

func (e *NotFoundError) Error() string {
	context := "<nil>"
	if e.In != nil {
		context = e.In.Name
	}
	return fmt.Sprintf("%s %q not found in %q", e.Kind, e.Name, context)
}

// Is lets callers test with errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
