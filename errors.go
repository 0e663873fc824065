package minexp

import (
	"errors"
)

var (
	ErrDuplicateDeclaration = errors.New("already defined variable")
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrUndefinedFunction    = errors.New("undefined function")
	ErrStepLimit            = errors.New("step limit exceeded")
)

// NameError reports an evaluation failure caused by name resolution.
type NameError struct {
	Err  error
	Name string
}

func (e *NameError) Error() string {
	return e.Err.Error() + ": " + e.Name
}

func (e *NameError) Unwrap() error {
	return e.Err
}
