// Package memory provides an in-process engine.Engine.
//
// It keeps the containers it would have created in a map and never touches
// the network, which makes it the backend for tests and dry runs. Containers
// are rendered and read back through package docker, so names, labels,
// environment and published ports behave as they would against a daemon.
package memory

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/engine/docker"
	"github.com/blang/semver/v4"
	"github.com/google/uuid"
)

// Defaults applied when a request leaves the choice to the engine.
const (
	DefaultImage    = "mongodb/mongodb-atlas-local"
	DefaultVersion  = "8.0.0"
	DefaultBasePort = 27017
)

// Engine is an in-memory deployment engine. It is safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	containers map[string]*docker.Container  // keyed by container ID
	bindings   map[string]engine.PortBinding // published ports, keyed by container ID
	order      []string
	nextName   int
	nextPort   int

	defaultImage   string
	defaultVersion semver.Version
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultImage sets the image used when a request names none.
func WithDefaultImage(image string) Option {
	return func(e *Engine) {
		e.defaultImage = image
	}
}

// WithDefaultVersion sets the version "latest" resolves to.
func WithDefaultVersion(v semver.Version) Option {
	return func(e *Engine) {
		e.defaultVersion = v
	}
}

// WithBasePort sets the first host port handed out to deployments that do
// not request one.
func WithBasePort(port uint16) Option {
	return func(e *Engine) {
		e.nextPort = int(port)
	}
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		containers:     make(map[string]*docker.Container),
		bindings:       make(map[string]engine.PortBinding),
		nextName:       1,
		nextPort:       DefaultBasePort,
		defaultImage:   DefaultImage,
		defaultVersion: semver.MustParse(DefaultVersion),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ engine.Engine = (*Engine)(nil)

// =============================================================================
// Lifecycle
// =============================================================================

// CreateDeployment records a new running deployment.
func (e *Engine) CreateDeployment(ctx context.Context, opts *engine.CreateDeploymentOptions) (*engine.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &engine.CreateDeploymentOptions{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var name string
	if opts.Name != nil {
		name = *opts.Name
	} else {
		name = e.generateName()
	}
	if _, ok := e.lookup(name); ok {
		return nil, engine.NewEngineError("CreateDeployment", name, "name already in use", engine.ErrDeploymentAlreadyExists)
	}

	image := e.defaultImage
	if opts.Image != nil {
		image = *opts.Image
	}

	var portBinding engine.PortBinding
	if opts.MongoDBPortBinding != nil {
		portBinding = *opts.MongoDBPortBinding
		if owner, taken := e.portOwner(portBinding); taken {
			return nil, engine.NewEngineError("CreateDeployment", name,
				fmt.Sprintf("%s:%d is published by %s", portBinding.HostAddr(), portBinding.Port, owner),
				engine.ErrPortAlreadyAllocated)
		}
	} else {
		port, ok := e.allocatePort()
		if !ok {
			return nil, engine.NewEngineError("CreateDeployment", name, "every loopback port is taken", engine.ErrPortsExhausted)
		}
		portBinding = engine.LoopbackBinding(port)
	}

	spec := docker.Render(opts, docker.Resolved{
		Name:    name,
		Image:   image,
		Version: e.resolveVersion(opts.MongoDBVersion),
		Binding: portBinding,
	})
	c := spec.Container(strings.ReplaceAll(uuid.NewString(), "-", ""), engine.StateRunning)

	d, err := docker.Deployment(c)
	if err != nil {
		return nil, engine.NewEngineError("CreateDeployment", name, "container is unreadable", err)
	}

	e.containers[c.ID] = &c
	e.bindings[c.ID] = portBinding
	e.order = append(e.order, c.ID)

	return d, nil
}

// ListDeployments returns all deployments in creation order.
func (e *Engine) ListDeployments(ctx context.Context) ([]engine.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]engine.Deployment, 0, len(e.order))
	for _, id := range e.order {
		d, err := e.read("ListDeployments", e.containers[id])
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, nil
}

// GetDeployment finds a deployment by container ID or name.
func (e *Engine) GetDeployment(ctx context.Context, containerIDOrName string) (*engine.Deployment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.lookup(containerIDOrName)
	if !ok {
		return nil, engine.NewEngineError("GetDeployment", containerIDOrName, "no such deployment", engine.ErrDeploymentNotFound)
	}
	return e.read("GetDeployment", c)
}

// DeleteDeployment removes a deployment by container ID or name.
func (e *Engine) DeleteDeployment(ctx context.Context, containerIDOrName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.lookup(containerIDOrName)
	if !ok {
		return engine.NewEngineError("DeleteDeployment", containerIDOrName, "no such deployment", engine.ErrDeploymentNotFound)
	}

	id := c.ID
	delete(e.containers, id)
	delete(e.bindings, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetConnectionString builds a MongoDB connection string for a deployment.
//
// Credentials default to the deployment's root user when the request
// carries none. A password needs a username, given or defaulted. With Verify
// set, only running deployments resolve.
func (e *Engine) GetConnectionString(ctx context.Context, opts engine.GetConnectionStringOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.lookup(opts.ContainerIDOrName)
	if !ok {
		return "", engine.NewEngineError("GetConnectionString", opts.ContainerIDOrName, "no such deployment", engine.ErrDeploymentNotFound)
	}
	d, err := e.read("GetConnectionString", c)
	if err != nil {
		return "", err
	}

	if d.PortBindings == nil {
		return "", engine.NewEngineError("GetConnectionString", opts.ContainerIDOrName, "port is not published", engine.ErrNoPortBinding)
	}
	if opts.Verify != nil && *opts.Verify && d.State != engine.StateRunning {
		return "", engine.NewEngineError("GetConnectionString", opts.ContainerIDOrName,
			fmt.Sprintf("deployment is %s", d.State), engine.ErrNotRunning)
	}

	username := firstSet(opts.DBUsername, d.MongoDBInitDBRootUsername)
	password := firstSet(opts.DBPassword, d.MongoDBInitDBRootPassword)
	if password != nil && username == nil {
		return "", engine.NewEngineError("GetConnectionString", opts.ContainerIDOrName,
			"no username to pair with the password", engine.ErrIncompleteCredentials)
	}

	return ConnectionString(*d.PortBindings, username, password), nil
}

// =============================================================================
// State Changes
// =============================================================================

// SetState changes the runtime state of a deployment, as if the container had
// been stopped, paused or restarted outside the engine.
func (e *Engine) SetState(containerIDOrName string, state engine.State) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.lookup(containerIDOrName)
	if !ok {
		return engine.NewEngineError("SetState", containerIDOrName, "no such deployment", engine.ErrDeploymentNotFound)
	}
	c.State = string(state)
	return nil
}

// Image returns the image a deployment was created from.
func (e *Engine) Image(containerIDOrName string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.lookup(containerIDOrName)
	if !ok {
		return "", false
	}
	return c.Config.Image, true
}

// =============================================================================
// Helpers
// =============================================================================

// ConnectionString renders a direct connection string for a published port.
// Deployments bound to every interface are reached over loopback.
func ConnectionString(b engine.PortBinding, username, password *string) string {
	host := b.HostAddr()
	if b.Type != engine.BindingSpecific {
		host = engine.LoopbackBinding(b.Port).HostAddr()
	}

	u := url.URL{
		Scheme:   "mongodb",
		Host:     net.JoinHostPort(host.String(), strconv.Itoa(int(b.Port))),
		Path:     "/",
		RawQuery: "directConnection=true",
	}
	switch {
	case username != nil && password != nil:
		u.User = url.UserPassword(*username, *password)
	case username != nil:
		u.User = url.User(*username)
	}
	return u.String()
}

// lookup matches a container ID first, then a name. Callers hold the lock.
func (e *Engine) lookup(containerIDOrName string) (*docker.Container, bool) {
	if c, ok := e.containers[containerIDOrName]; ok {
		return c, true
	}
	for _, c := range e.containers {
		if strings.TrimPrefix(c.Name, "/") == containerIDOrName {
			return c, true
		}
	}
	return nil, false
}

// read turns a stored container into a fresh deployment record.
func (e *Engine) read(op string, c *docker.Container) (*engine.Deployment, error) {
	d, err := docker.Deployment(*c)
	if err != nil {
		return nil, engine.NewEngineError(op, c.ID, "container is unreadable", err)
	}
	return d, nil
}

// generateName returns the next unused "localN" name. Callers hold the lock.
func (e *Engine) generateName() string {
	for {
		name := fmt.Sprintf("local%d", e.nextName)
		e.nextName++
		if _, taken := e.lookup(name); !taken {
			return name
		}
	}
}

// allocatePort hands out the lowest free loopback port at or above the
// cursor. Callers hold the lock.
func (e *Engine) allocatePort() (uint16, bool) {
	for p := max(e.nextPort, 1); p <= math.MaxUint16; p++ {
		if _, taken := e.portOwner(engine.LoopbackBinding(uint16(p))); taken {
			continue
		}
		e.nextPort = p + 1
		return uint16(p), true
	}
	return 0, false
}

// portOwner reports the deployment already publishing b's host port. Two
// bindings clash on the same port when their addresses match or either one
// listens on every interface. Port 0 asks for an ephemeral port and never
// clashes. Callers hold the lock.
func (e *Engine) portOwner(b engine.PortBinding) (string, bool) {
	if b.Port == 0 {
		return "", false
	}
	addr := b.HostAddr()
	for id, other := range e.bindings {
		if other.Port != b.Port {
			continue
		}
		otherAddr := other.HostAddr()
		if addr == otherAddr || addr.IsUnspecified() || otherAddr.IsUnspecified() {
			return strings.TrimPrefix(e.containers[id].Name, "/"), true
		}
	}
	return "", false
}

// resolveVersion picks the concrete version for a request. Partial versions
// resolve to the default when it matches, and to the lowest release of the
// requested line otherwise.
func (e *Engine) resolveVersion(v engine.Version) semver.Version {
	def := e.defaultVersion
	switch v.Precision() {
	case engine.PrecisionMajor:
		if def.Major == v.Major() {
			return def
		}
		return semver.Version{Major: v.Major()}
	case engine.PrecisionMajorMinor:
		if def.Major == v.Major() && def.Minor == v.Minor() {
			return def
		}
		return semver.Version{Major: v.Major(), Minor: v.Minor()}
	case engine.PrecisionMajorMinorPatch:
		exact, _ := v.Semver()
		return exact
	default:
		return def
	}
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
