// Package engine defines the deployment engine's model and the interface the
// client consumes it through.
//
// The engine owns container lifecycle, image pulls, health polling and
// telemetry wiring. Its model is richer than the external schema in
// pkg/models: versions carry a precision, addresses are typed, and the
// creation source is a closed set of variants plus an unknown fallback.
package engine

import (
	"context"
	"time"

	"github.com/blang/semver/v4"
)

// Engine manages local Atlas deployments.
//
// A nil error from CreateDeployment or GetDeployment comes with a non-nil
// record; callers treat a missing record as a failed call.
type Engine interface {
	CreateDeployment(ctx context.Context, opts *CreateDeploymentOptions) (*Deployment, error)
	ListDeployments(ctx context.Context) ([]Deployment, error)
	GetDeployment(ctx context.Context, containerIDOrName string) (*Deployment, error)
	DeleteDeployment(ctx context.Context, containerIDOrName string) error
	GetConnectionString(ctx context.Context, opts GetConnectionStringOptions) (string, error)
}

// =============================================================================
// Commands
// =============================================================================

// CreateDeploymentOptions is the engine's creation command. Nil fields are
// filled in by the engine.
type CreateDeploymentOptions struct {
	// Identifiers
	Name *string

	// Image details
	Image          *string
	SkipPullImage  *bool
	MongoDBVersion Version // zero value: latest / engine default

	// Creation options
	WaitUntilHealthy        *bool
	WaitUntilHealthyTimeout *time.Duration // zero: do not wait
	CreationSource          CreationSource

	// Initial database configuration
	LocalSeedLocation             *string
	LoadSampleData                *bool
	MongoDBInitDBDatabase         *string
	MongoDBInitDBRootPasswordFile *string
	MongoDBInitDBRootPassword     *string
	MongoDBInitDBRootUsernameFile *string
	MongoDBInitDBRootUsername     *string
	VoyageAPIKey                  *string

	// Logging
	MongotLogFile *string
	RunnerLogFile *string

	// Telemetry
	DoNotTrack       *bool
	TelemetryBaseURL *string

	// Port configuration
	MongoDBPortBinding *PortBinding
}

// GetConnectionStringOptions selects a deployment and optional credentials.
type GetConnectionStringOptions struct {
	ContainerIDOrName string
	DBUsername        *string
	DBPassword        *string
	Verify            *bool
}

// =============================================================================
// Records
// =============================================================================

// Deployment is the engine's view of an existing deployment.
type Deployment struct {
	// Identifiers
	ContainerID string
	Name        *string

	// Container runtime
	State        State
	PortBindings *PortBinding

	// MongoDB details
	MongoDBType    MongoDBType
	MongoDBVersion semver.Version

	CreationSource CreationSource // nil when the container carries no provenance

	// Initial database configuration
	LocalSeedLocation             *string
	MongoDBInitDBDatabase         *string
	MongoDBInitDBRootPasswordFile *string
	MongoDBInitDBRootPassword     *string
	MongoDBInitDBRootUsernameFile *string
	MongoDBInitDBRootUsername     *string

	// Logging
	MongotLogFile *string
	RunnerLogFile *string

	// Telemetry, verbatim from the container environment
	DoNotTrack       *string
	TelemetryBaseURL *string
}

// MongoDBType is the server edition.
type MongoDBType string

const (
	MongoDBTypeCommunity  MongoDBType = "community"
	MongoDBTypeEnterprise MongoDBType = "enterprise"
)
