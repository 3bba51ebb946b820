// Package client is the caller-facing API for local Atlas deployments.
//
// Each operation translates the request into the engine model, delegates to
// the engine, and projects the engine's answer back into pkg/models.
// Translation always completes before the engine is called, so a malformed
// request never reaches it, and a failed engine call never yields a partial
// result.
//
// # Usage
//
//	c := client.New(eng, client.WithLogger(logger))
//	d, err := c.CreateDeployment(ctx, models.CreateDeploymentOptions{
//	    Name:           ptr("local1"),
//	    MongoDBVersion: ptr("8.0"),
//	})
package client

import (
	"context"
	"log/slog"

	"github.com/artpar/atlaslocal/internal/core/options"
	"github.com/artpar/atlaslocal/internal/core/projection"
	"github.com/artpar/atlaslocal/internal/core/version"
	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
	"github.com/google/uuid"
)

// Operation names used to tag errors.
const (
	OpCreateDeployment    = "create deployment"
	OpListDeployments     = "list deployments"
	OpGetDeployment       = "get deployment"
	OpDeleteDeployment    = "delete deployment"
	OpGetConnectionString = "get connection string"
)

// Client manages deployments through an engine. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	engine engine.Engine
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. By default the client does not log.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client backed by e.
func New(e engine.Engine, opts ...Option) *Client {
	c := &Client{
		engine: e,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Lifecycle Operations
// =============================================================================

// CreateDeployment creates a deployment and returns it as the engine reports
// it after creation.
func (c *Client) CreateDeployment(ctx context.Context, req models.CreateDeploymentOptions) (*models.Deployment, error) {
	logger := c.operationLogger(OpCreateDeployment)

	cmd, err := options.Assemble(req)
	if err != nil {
		logger.Debug("rejected deployment request", "error", err)
		return nil, newOperationError(OpCreateDeployment, err)
	}

	logger.Debug("creating deployment",
		"name", deref(cmd.Name),
		"version", version.Display(cmd.MongoDBVersion),
	)

	created, err := c.engine.CreateDeployment(ctx, cmd)
	if err != nil {
		logger.Warn("engine failed to create deployment", "error", err)
		return nil, newOperationError(OpCreateDeployment, err)
	}
	if created == nil {
		logger.Warn("engine returned no deployment")
		return nil, newOperationError(OpCreateDeployment, ErrEmptyResult)
	}

	result := projection.Deployment(*created)
	logger.Info("created deployment",
		"container_id", result.ContainerID,
		"name", deref(result.Name),
		"version", result.MongoDBVersion,
	)
	return &result, nil
}

// ListDeployments returns every deployment the engine manages.
func (c *Client) ListDeployments(ctx context.Context) ([]models.Deployment, error) {
	logger := c.operationLogger(OpListDeployments)

	deployments, err := c.engine.ListDeployments(ctx)
	if err != nil {
		logger.Warn("engine failed to list deployments", "error", err)
		return nil, newOperationError(OpListDeployments, err)
	}

	logger.Debug("listed deployments", "count", len(deployments))
	return projection.Deployments(deployments), nil
}

// GetDeployment returns one deployment by container ID or name.
func (c *Client) GetDeployment(ctx context.Context, containerIDOrName string) (*models.Deployment, error) {
	logger := c.operationLogger(OpGetDeployment)

	d, err := c.engine.GetDeployment(ctx, containerIDOrName)
	if err != nil {
		logger.Warn("engine failed to get deployment", "deployment", containerIDOrName, "error", err)
		return nil, newOperationError(OpGetDeployment, err)
	}
	if d == nil {
		logger.Warn("engine returned no deployment", "deployment", containerIDOrName)
		return nil, newOperationError(OpGetDeployment, ErrEmptyResult)
	}

	result := projection.Deployment(*d)
	return &result, nil
}

// DeleteDeployment removes a deployment by container ID or name.
func (c *Client) DeleteDeployment(ctx context.Context, containerIDOrName string) error {
	logger := c.operationLogger(OpDeleteDeployment)

	if err := c.engine.DeleteDeployment(ctx, containerIDOrName); err != nil {
		logger.Warn("engine failed to delete deployment", "deployment", containerIDOrName, "error", err)
		return newOperationError(OpDeleteDeployment, err)
	}

	logger.Info("deleted deployment", "deployment", containerIDOrName)
	return nil
}

// GetConnectionString resolves the MongoDB connection string for a
// deployment.
func (c *Client) GetConnectionString(ctx context.Context, req models.GetConnectionStringOptions) (string, error) {
	logger := c.operationLogger(OpGetConnectionString)

	cs, err := c.engine.GetConnectionString(ctx, options.ConnectionString(req))
	if err != nil {
		logger.Warn("engine failed to resolve connection string", "deployment", req.ContainerIDOrName, "error", err)
		return "", newOperationError(OpGetConnectionString, err)
	}
	return cs, nil
}

// =============================================================================
// Helpers
// =============================================================================

// operationLogger tags every log line of one call with a shared ID.
func (c *Client) operationLogger(op string) *slog.Logger {
	return c.logger.With("operation", op, "operation_id", uuid.NewString())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
