package docker

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrNotDeployment     = errors.New("container is not an atlas local deployment")
	ErrMalformedMetadata = errors.New("malformed deployment metadata")
)

// DockerError wraps errors with the container and the piece of metadata that
// could not be read.
type DockerError struct {
	Op      string // Operation that failed
	ID      string // Container ID
	Field   string // Label, env var or port the error is about
	Message string
	Err     error
}

func (e *DockerError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s container %s: %s: %s", e.Op, e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("%s container %s: %s", e.Op, e.ID, e.Message)
}

func (e *DockerError) Unwrap() error {
	return e.Err
}

// NewDockerError creates a new DockerError.
func NewDockerError(op, id, field, message string, err error) *DockerError {
	return &DockerError{
		Op:      op,
		ID:      id,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
