package engine

// CreationSource identifies the tool or protocol that created a deployment.
//
// The set of known sources grows over time. Sources this version of the
// engine does not recognise are carried as UnknownSource with their raw
// label, so records from newer engines still round-trip.
type CreationSource interface {
	// Label is the token stored on the container.
	Label() string

	creationSource()
}

// Labels for the known creation sources.
const (
	LabelAtlasCLI  = "ATLASCLI"
	LabelContainer = "CONTAINER"
	LabelMCPServer = "MCPSERVER"
)

// AtlasCLISource marks deployments created by the Atlas CLI.
type AtlasCLISource struct{}

// ContainerSource marks deployments started directly as a container.
type ContainerSource struct{}

// MCPServerSource marks deployments created through the MCP server.
type MCPServerSource struct{}

// UnknownSource carries a label the engine does not recognise.
type UnknownSource struct {
	Value string
}

func (AtlasCLISource) Label() string { return LabelAtlasCLI }
func (ContainerSource) Label() string { return LabelContainer }
func (MCPServerSource) Label() string { return LabelMCPServer }
func (s UnknownSource) Label() string { return s.Value }
func (AtlasCLISource) creationSource() {}
func (ContainerSource) creationSource() {}
func (MCPServerSource) creationSource() {}
func (UnknownSource) creationSource() {}

// ParseCreationSource maps a stored label to its source. Labels outside the
// known set become UnknownSource holding the label verbatim.
func ParseCreationSource(label string) CreationSource {
	switch label {
	case LabelAtlasCLI:
		return AtlasCLISource{}
	case LabelContainer:
		return ContainerSource{}
	case LabelMCPServer:
		return MCPServerSource{}
	default:
		return UnknownSource{Value: label}
	}
}
