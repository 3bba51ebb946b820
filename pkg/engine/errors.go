package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Deployment errors
	ErrDeploymentNotFound      = errors.New("deployment not found")
	ErrDeploymentAlreadyExists = errors.New("deployment already exists")
	ErrNoPortBinding           = errors.New("deployment has no port binding")
	ErrNotRunning              = errors.New("deployment is not running")

	// Port errors
	ErrPortAlreadyAllocated = errors.New("port is already allocated")
	ErrPortsExhausted       = errors.New("no free host port")

	// Connection errors
	ErrIncompleteCredentials = errors.New("password given without a username")

	// Version errors
	ErrVersionNotComparable = errors.New("version is not fully resolved")
	ErrInvalidHostBinding   = errors.New("invalid host binding")
)

// EngineError wraps engine errors with additional context.
type EngineError struct {
	Op      string // Operation that failed
	ID      string // Container ID or name if applicable
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, id, message string, err error) *EngineError {
	return &EngineError{
		Op:      op,
		ID:      id,
		Message: message,
		Err:     err,
	}
}
