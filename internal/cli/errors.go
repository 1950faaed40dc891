package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidValueError struct {
	value string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid time %q (expected HH:MM, HH:MM:SS or @saved-name)", e.value)
}

func errInvalidValue(v string) error {
	return invalidValueError{value: v}
}

type invalidOpError struct {
	op     string
	reason string
}

func (e invalidOpError) Error() string {
	return fmt.Sprintf("invalid op %q: %s (run `timepick docs picker` for the op list)", e.op, e.reason)
}

func errInvalidOp(op, reason string) error {
	return invalidOpError{op: op, reason: reason}
}
