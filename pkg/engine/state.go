package engine

import (
	"github.com/docker/docker/api/types/container"
)

// State is the container runtime state of a deployment. Values are the
// Docker Engine API state strings.
type State string

const (
	StateCreated    State = State(container.StateCreated)
	StateDead       State = State(container.StateDead)
	StateExited     State = State(container.StateExited)
	StatePaused     State = State(container.StatePaused)
	StateRemoving   State = State(container.StateRemoving)
	StateRestarting State = State(container.StateRestarting)
	StateRunning    State = State(container.StateRunning)
)

// ParseState converts a Docker container state string into a State.
func ParseState(s string) (State, error) {
	if err := container.ValidateContainerState(s); err != nil {
		return "", NewEngineError("ParseState", s, "unknown container state", err)
	}
	return State(s), nil
}
