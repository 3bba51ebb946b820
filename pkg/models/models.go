// Package models defines the external, versioned schema for local Atlas
// deployments.
//
// Every request field is optional: a nil pointer means "let the engine
// choose", never "unset". Result types mirror what the engine reports for an
// existing deployment. These types carry no behaviour beyond validation of
// their enumerations; translation to and from the engine model lives in
// internal/core.
package models

// =============================================================================
// Port Binding
// =============================================================================

// BindingType selects which host interface the MongoDB port is published on.
type BindingType string

const (
	BindingTypeLoopback     BindingType = "Loopback"     // 127.0.0.1
	BindingTypeAnyInterface BindingType = "AnyInterface" // 0.0.0.0
	BindingTypeSpecific     BindingType = "Specific"     // caller-supplied IP
)

// Valid reports whether t is one of the known binding types.
func (t BindingType) Valid() bool {
	switch t {
	case BindingTypeLoopback, BindingTypeAnyInterface, BindingTypeSpecific:
		return true
	}
	return false
}

// Display addresses for the fixed binding types.
const (
	LoopbackAddress     = "127.0.0.1"
	AnyInterfaceAddress = "0.0.0.0"
)

// PortBinding describes how the deployment's MongoDB port is exposed.
// IP is only read for BindingTypeSpecific; for the other types it is a
// display value derived from the type.
type PortBinding struct {
	Type BindingType `json:"type" yaml:"type"`
	IP   string      `json:"ip" yaml:"ip"`
	Port uint16      `json:"port" yaml:"port"`
}

// =============================================================================
// Creation Source
// =============================================================================

// CreationSourceType tags the tool or protocol that created a deployment.
type CreationSourceType string

const (
	CreationSourceTypeAtlasCLI  CreationSourceType = "AtlasCLI"
	CreationSourceTypeContainer CreationSourceType = "Container"
	CreationSourceTypeMCPServer CreationSourceType = "MCPServer"
	CreationSourceTypeOther     CreationSourceType = "Other"
)

// Known reports whether t is one of the fixed provenance tags. Other is not
// fixed: it carries free text.
func (t CreationSourceType) Known() bool {
	switch t {
	case CreationSourceTypeAtlasCLI, CreationSourceTypeContainer, CreationSourceTypeMCPServer:
		return true
	}
	return false
}

// CreationSource records what created a deployment. For known types Source is
// the fixed upper-case token; for Other it is the raw text reported by the
// engine.
type CreationSource struct {
	Type   CreationSourceType `json:"type" yaml:"type"`
	Source string             `json:"source" yaml:"source"`
}

// =============================================================================
// Deployment State
// =============================================================================

// State is the container runtime state of a deployment.
type State string

const (
	StateCreated    State = "Created"
	StateDead       State = "Dead"
	StateExited     State = "Exited"
	StatePaused     State = "Paused"
	StateRemoving   State = "Removing"
	StateRestarting State = "Restarting"
	StateRunning    State = "Running"
)

// MongoDBType is the MongoDB server edition running in a deployment.
type MongoDBType string

const (
	MongoDBTypeCommunity  MongoDBType = "Community"
	MongoDBTypeEnterprise MongoDBType = "Enterprise"
)

// =============================================================================
// Requests
// =============================================================================

// CreateDeploymentOptions is a request to create a deployment.
type CreateDeploymentOptions struct {
	// Identifiers
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	// Image details
	Image          *string `json:"image,omitempty" yaml:"image,omitempty"`
	SkipPullImage  *bool   `json:"skipPullImage,omitempty" yaml:"skipPullImage,omitempty"`
	MongoDBVersion *string `json:"mongodbVersion,omitempty" yaml:"mongodbVersion,omitempty"`

	// Creation options
	WaitUntilHealthy        *bool           `json:"waitUntilHealthy,omitempty" yaml:"waitUntilHealthy,omitempty"`
	WaitUntilHealthyTimeout *uint32         `json:"waitUntilHealthyTimeout,omitempty" yaml:"waitUntilHealthyTimeout,omitempty"` // seconds
	CreationSource          *CreationSource `json:"creationSource,omitempty" yaml:"creationSource,omitempty"`

	// Initial database configuration
	LocalSeedLocation             *string `json:"localSeedLocation,omitempty" yaml:"localSeedLocation,omitempty"`
	LoadSampleData                *bool   `json:"loadSampleData,omitempty" yaml:"loadSampleData,omitempty"`
	MongoDBInitDBDatabase         *string `json:"mongodbInitdbDatabase,omitempty" yaml:"mongodbInitdbDatabase,omitempty"`
	MongoDBInitDBRootPasswordFile *string `json:"mongodbInitdbRootPasswordFile,omitempty" yaml:"mongodbInitdbRootPasswordFile,omitempty"`
	MongoDBInitDBRootPassword     *string `json:"mongodbInitdbRootPassword,omitempty" yaml:"mongodbInitdbRootPassword,omitempty"`
	MongoDBInitDBRootUsernameFile *string `json:"mongodbInitdbRootUsernameFile,omitempty" yaml:"mongodbInitdbRootUsernameFile,omitempty"`
	MongoDBInitDBRootUsername     *string `json:"mongodbInitdbRootUsername,omitempty" yaml:"mongodbInitdbRootUsername,omitempty"`
	VoyageAPIKey                  *string `json:"voyageApiKey,omitempty" yaml:"voyageApiKey,omitempty"`

	// Logging
	MongotLogFile *string `json:"mongotLogFile,omitempty" yaml:"mongotLogFile,omitempty"`
	RunnerLogFile *string `json:"runnerLogFile,omitempty" yaml:"runnerLogFile,omitempty"`

	// Telemetry
	DoNotTrack       *bool   `json:"doNotTrack,omitempty" yaml:"doNotTrack,omitempty"`
	TelemetryBaseURL *string `json:"telemetryBaseUrl,omitempty" yaml:"telemetryBaseUrl,omitempty"`

	// Port configuration
	MongoDBPortBinding *PortBinding `json:"mongodbPortBinding,omitempty" yaml:"mongodbPortBinding,omitempty"`
}

// GetConnectionStringOptions selects a deployment and the credentials to
// embed in its connection string.
type GetConnectionStringOptions struct {
	ContainerIDOrName string  `json:"containerIdOrName" yaml:"containerIdOrName"`
	DBUsername        *string `json:"dbUsername,omitempty" yaml:"dbUsername,omitempty"`
	DBPassword        *string `json:"dbPassword,omitempty" yaml:"dbPassword,omitempty"`
	Verify            *bool   `json:"verify,omitempty" yaml:"verify,omitempty"`
}

// =============================================================================
// Results
// =============================================================================

// Deployment is the external view of an existing deployment.
type Deployment struct {
	// Identifiers
	ContainerID string  `json:"containerId" yaml:"containerId"`
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`

	// Container runtime
	State        State        `json:"state" yaml:"state"`
	PortBindings *PortBinding `json:"portBindings,omitempty" yaml:"portBindings,omitempty"`

	// MongoDB details
	MongoDBType    MongoDBType `json:"mongodbType" yaml:"mongodbType"`
	MongoDBVersion string      `json:"mongodbVersion" yaml:"mongodbVersion"`

	CreationSource *CreationSource `json:"creationSource,omitempty" yaml:"creationSource,omitempty"`

	// Initial database configuration
	LocalSeedLocation             *string `json:"localSeedLocation,omitempty" yaml:"localSeedLocation,omitempty"`
	MongoDBInitDBDatabase         *string `json:"mongodbInitdbDatabase,omitempty" yaml:"mongodbInitdbDatabase,omitempty"`
	MongoDBInitDBRootPasswordFile *string `json:"mongodbInitdbRootPasswordFile,omitempty" yaml:"mongodbInitdbRootPasswordFile,omitempty"`
	MongoDBInitDBRootPassword     *string `json:"mongodbInitdbRootPassword,omitempty" yaml:"mongodbInitdbRootPassword,omitempty"`
	MongoDBInitDBRootUsernameFile *string `json:"mongodbInitdbRootUsernameFile,omitempty" yaml:"mongodbInitdbRootUsernameFile,omitempty"`
	MongoDBInitDBRootUsername     *string `json:"mongodbInitdbRootUsername,omitempty" yaml:"mongodbInitdbRootUsername,omitempty"`

	// Logging
	MongotLogFile *string `json:"mongotLogFile,omitempty" yaml:"mongotLogFile,omitempty"`
	RunnerLogFile *string `json:"runnerLogFile,omitempty" yaml:"runnerLogFile,omitempty"`

	// Telemetry, as reported by the container environment
	DoNotTrack       *string `json:"doNotTrack,omitempty" yaml:"doNotTrack,omitempty"`
	TelemetryBaseURL *string `json:"telemetryBaseUrl,omitempty" yaml:"telemetryBaseUrl,omitempty"`
}
