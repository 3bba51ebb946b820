// Package docker maps deployments onto Docker container configuration and
// back.
//
// Render produces the create request a deployment's container is started
// from, and Deployment reads a deployment back out of an inspected container.
// Both work on the Docker API types only; nothing here talks to a daemon.
package docker

import (
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
)

// =============================================================================
// Container Conventions
// =============================================================================

// Labels set on every deployment container.
const (
	LabelAtlasLocal  = "mongodb-atlas-local"
	LabelVersion     = "version"
	LabelMongoDBType = "mongodb-type"

	// AtlasLocalContainer is the value of LabelAtlasLocal that marks a
	// container as a deployment.
	AtlasLocalContainer = "container"
)

// Environment variables understood by the atlas local image.
const (
	EnvTool                   = "TOOL"
	EnvInitDBDatabase         = "MONGODB_INITDB_DATABASE"
	EnvInitDBRootUsername     = "MONGODB_INITDB_ROOT_USERNAME"
	EnvInitDBRootUsernameFile = "MONGODB_INITDB_ROOT_USERNAME_FILE"
	EnvInitDBRootPassword     = "MONGODB_INITDB_ROOT_PASSWORD"
	EnvInitDBRootPasswordFile = "MONGODB_INITDB_ROOT_PASSWORD_FILE"
	EnvLoadSampleData         = "MONGODB_LOAD_SAMPLE_DATA"
	EnvVoyageAPIKey           = "VOYAGE_API_KEY"
	EnvMongotLogFile          = "MONGOT_LOG_FILE"
	EnvRunnerLogFile          = "RUNNER_LOG_FILE"
	EnvDoNotTrack             = "DO_NOT_TRACK"
	EnvTelemetryBaseURL       = "TELEMETRY_BASE_URL"
)

// MongoDBPort is the port mongod listens on inside the container.
const MongoDBPort nat.Port = "27017/tcp"

// SeedMountTarget is where a local seed directory is mounted.
const SeedMountTarget = "/docker-entrypoint-initdb.d"

// =============================================================================
// Container Types
// =============================================================================

// Spec is the create request for a deployment's container.
type Spec struct {
	Name       string
	Config     *container.Config
	HostConfig *container.HostConfig
}

// Container is the part of an inspected container a deployment is read
// from.
type Container struct {
	ID     string
	Name   string // as reported by the API, usually with a leading "/"
	State  container.ContainerState
	Config *container.Config
	Ports  nat.PortMap
	Mounts []container.MountPoint
}
