package docker

import (
	"strings"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/blang/semver/v4"
)

// IsDeployment reports whether labels mark a container as a deployment.
func IsDeployment(labels map[string]string) bool {
	return labels[LabelAtlasLocal] == AtlasLocalContainer
}

// Deployment reads a deployment back from an inspected container. Labels and
// environment are the source of truth; a container without the deployment
// label is rejected with ErrNotDeployment.
func Deployment(c Container) (*engine.Deployment, error) {
	if c.Config == nil || !IsDeployment(c.Config.Labels) {
		return nil, NewDockerError("Deployment", c.ID, LabelAtlasLocal, "label missing", ErrNotDeployment)
	}
	labels := c.Config.Labels

	state, err := engine.ParseState(string(c.State))
	if err != nil {
		return nil, NewDockerError("Deployment", c.ID, "state", err.Error(), ErrMalformedMetadata)
	}

	version, err := semver.Parse(labels[LabelVersion])
	if err != nil {
		return nil, NewDockerError("Deployment", c.ID, LabelVersion, err.Error(), ErrMalformedMetadata)
	}

	mongodbType := engine.MongoDBType(labels[LabelMongoDBType])
	switch mongodbType {
	case engine.MongoDBTypeCommunity, engine.MongoDBTypeEnterprise:
	case "":
		mongodbType = MongoDBTypeForImage(c.Config.Image)
	default:
		return nil, NewDockerError("Deployment", c.ID, LabelMongoDBType, "unknown edition "+string(mongodbType), ErrMalformedMetadata)
	}

	var portBinding *engine.PortBinding
	if bindings := c.Ports[MongoDBPort]; len(bindings) > 0 {
		b, err := engine.PortBindingFromHost(bindings[0])
		if err != nil {
			return nil, NewDockerError("Deployment", c.ID, string(MongoDBPort), err.Error(), ErrMalformedMetadata)
		}
		portBinding = &b
	}

	env := parseEnv(c.Config.Env)

	d := &engine.Deployment{
		ContainerID: c.ID,
		Name:        nameOf(c.Name),

		State:        state,
		PortBindings: portBinding,

		MongoDBType:    mongodbType,
		MongoDBVersion: version,

		LocalSeedLocation:             seedLocation(c),
		MongoDBInitDBDatabase:         env.get(EnvInitDBDatabase),
		MongoDBInitDBRootPasswordFile: env.get(EnvInitDBRootPasswordFile),
		MongoDBInitDBRootPassword:     env.get(EnvInitDBRootPassword),
		MongoDBInitDBRootUsernameFile: env.get(EnvInitDBRootUsernameFile),
		MongoDBInitDBRootUsername:     env.get(EnvInitDBRootUsername),

		MongotLogFile: env.get(EnvMongotLogFile),
		RunnerLogFile: env.get(EnvRunnerLogFile),

		DoNotTrack:       env.get(EnvDoNotTrack),
		TelemetryBaseURL: env.get(EnvTelemetryBaseURL),
	}
	if tool := env.get(EnvTool); tool != nil {
		d.CreationSource = engine.ParseCreationSource(*tool)
	}

	return d, nil
}

// =============================================================================
// Helpers
// =============================================================================

type environment map[string]string

// parseEnv splits KEY=value entries. Later entries win, as in the container.
func parseEnv(entries []string) environment {
	env := make(environment, len(entries))
	for _, e := range entries {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	return env
}

func (e environment) get(key string) *string {
	v, ok := e[key]
	if !ok {
		return nil
	}
	return &v
}

func nameOf(raw string) *string {
	name := strings.TrimPrefix(raw, "/")
	if name == "" {
		return nil
	}
	return &name
}

func seedLocation(c Container) *string {
	for _, m := range c.Mounts {
		if m.Destination == SeedMountTarget {
			source := m.Source
			return &source
		}
	}
	return nil
}
