package docker

import (
	"strconv"
	"strings"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/blang/semver/v4"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"
)

// Resolved holds the choices the engine makes before a container is
// rendered.
type Resolved struct {
	Name    string
	Image   string
	Version semver.Version
	Binding engine.PortBinding
}

// Render builds the create request for a deployment. Everything not in r is
// taken from opts; nil fields are left out of the container.
func Render(opts *engine.CreateDeploymentOptions, r Resolved) Spec {
	if opts == nil {
		opts = &engine.CreateDeploymentOptions{}
	}

	config := &container.Config{
		Image: r.Image,
		Labels: map[string]string{
			LabelAtlasLocal:  AtlasLocalContainer,
			LabelVersion:     r.Version.String(),
			LabelMongoDBType: string(MongoDBTypeForImage(r.Image)),
		},
		ExposedPorts: nat.PortSet{MongoDBPort: struct{}{}},
	}

	// Environment, in a fixed order so identical requests render identically
	var tool *string
	if opts.CreationSource != nil {
		label := opts.CreationSource.Label()
		tool = &label
	}
	config.Env = env([]envVar{
		{EnvTool, tool},
		{EnvInitDBDatabase, opts.MongoDBInitDBDatabase},
		{EnvInitDBRootUsername, opts.MongoDBInitDBRootUsername},
		{EnvInitDBRootUsernameFile, opts.MongoDBInitDBRootUsernameFile},
		{EnvInitDBRootPassword, opts.MongoDBInitDBRootPassword},
		{EnvInitDBRootPasswordFile, opts.MongoDBInitDBRootPasswordFile},
		{EnvLoadSampleData, formatBool(opts.LoadSampleData)},
		{EnvVoyageAPIKey, opts.VoyageAPIKey},
		{EnvMongotLogFile, opts.MongotLogFile},
		{EnvRunnerLogFile, opts.RunnerLogFile},
		{EnvDoNotTrack, formatBool(opts.DoNotTrack)},
		{EnvTelemetryBaseURL, opts.TelemetryBaseURL},
	})

	hostConfig := &container.HostConfig{
		PortBindings: nat.PortMap{
			MongoDBPort: []nat.PortBinding{r.Binding.HostBinding()},
		},
	}

	// Seed data is bind-mounted where the image runs init scripts from
	if opts.LocalSeedLocation != nil {
		hostConfig.Mounts = append(hostConfig.Mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   *opts.LocalSeedLocation,
			Target:   SeedMountTarget,
			ReadOnly: true,
		})
	}

	return Spec{
		Name:       r.Name,
		Config:     config,
		HostConfig: hostConfig,
	}
}

// Container returns the container the Docker API would report after
// creating s under id.
func (s Spec) Container(id string, state engine.State) Container {
	c := Container{
		ID:     id,
		Name:   "/" + s.Name,
		State:  container.ContainerState(state),
		Config: s.Config,
		Ports:  s.HostConfig.PortBindings,
	}
	for _, m := range s.HostConfig.Mounts {
		c.Mounts = append(c.Mounts, container.MountPoint{
			Type:        m.Type,
			Source:      m.Source,
			Destination: m.Target,
			RW:          !m.ReadOnly,
		})
	}
	return c
}

// MongoDBTypeForImage reports the server edition an image ships.
func MongoDBTypeForImage(image string) engine.MongoDBType {
	if strings.Contains(image, "enterprise") {
		return engine.MongoDBTypeEnterprise
	}
	return engine.MongoDBTypeCommunity
}

type envVar struct {
	name  string
	value *string
}

// env renders vars as KEY=value entries, skipping unset ones.
func env(vars []envVar) []string {
	var result []string
	for _, v := range vars {
		if v.value != nil {
			result = append(result, v.name+"="+*v.value)
		}
	}
	return result
}

func formatBool(b *bool) *string {
	if b == nil {
		return nil
	}
	s := strconv.FormatBool(*b)
	return &s
}
