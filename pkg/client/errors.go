package client

import "errors"

// ErrEmptyResult reports an engine that answered without error but returned
// no deployment record.
var ErrEmptyResult = errors.New("engine returned no deployment")

// OperationError tags a failure with the lifecycle operation it came from.
// The underlying translation or engine error is reachable through Unwrap.
type OperationError struct {
	Op  string // e.g., "create deployment"
	Err error
}

func (e *OperationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func newOperationError(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}
