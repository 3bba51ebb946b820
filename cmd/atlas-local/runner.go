package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/artpar/atlaslocal/internal/core/options"
	"github.com/artpar/atlaslocal/internal/core/version"
	"github.com/artpar/atlaslocal/pkg/client"
	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/engine/memory"
	"github.com/artpar/atlaslocal/pkg/models"
	"github.com/blang/semver/v4"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess      = 0
	ExitConfigError  = 1
	ExitRequestError = 2
	ExitEngineError  = 3
	ExitOutputError  = 4
)

// RunError carries the exit code a failed step maps to.
type RunError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func exitCode(logger *slog.Logger, err error) int {
	var rErr *RunError
	if errors.As(err, &rErr) {
		logger.Error("atlas-local failed",
			"error", rErr.Err,
			"operation", rErr.Op,
		)
		return rErr.ExitCode
	}
	logger.Error("atlas-local failed", "error", err)
	return ExitConfigError
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes one deployment request.
type Runner struct {
	config *Config
	logger *slog.Logger
	out    io.Writer
}

// NewRunner creates a runner writing its results to out.
func NewRunner(cfg *Config, logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
		out:    out,
	}
}

// ReadRequest decodes the request document at path, or from stdin when path
// is "-".
func (r *Runner) ReadRequest(path string, stdin io.Reader) (models.CreateDeploymentOptions, error) {
	src := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.CreateDeploymentOptions{}, &RunError{Op: "read request", Err: err, ExitCode: ExitRequestError}
		}
		defer f.Close()
		src = f
	}

	req, err := models.DecodeCreateDeploymentOptions(src)
	if err != nil {
		return models.CreateDeploymentOptions{}, &RunError{Op: "decode request", Err: err, ExitCode: ExitRequestError}
	}
	return req, nil
}

// Plan prints the engine command the request translates to.
func (r *Runner) Plan(req models.CreateDeploymentOptions) error {
	cmd, err := options.Assemble(req)
	if err != nil {
		return &RunError{Op: "translate request", Err: err, ExitCode: ExitRequestError}
	}
	return r.write(newPlanView(cmd))
}

// Apply creates the deployment on an in-process engine and prints it along
// with its connection string.
func (r *Runner) Apply(ctx context.Context, req models.CreateDeploymentOptions) error {
	eng, err := r.newEngine()
	if err != nil {
		return &RunError{Op: "create engine", Err: err, ExitCode: ExitConfigError}
	}
	c := client.New(eng, client.WithLogger(r.logger))

	d, err := c.CreateDeployment(ctx, req)
	if err != nil {
		code := ExitEngineError
		if isRequestError(err) {
			code = ExitRequestError
		}
		return &RunError{Op: "create deployment", Err: err, ExitCode: code}
	}

	cs, err := c.GetConnectionString(ctx, models.GetConnectionStringOptions{ContainerIDOrName: d.ContainerID})
	if err != nil {
		return &RunError{Op: "get connection string", Err: err, ExitCode: ExitEngineError}
	}

	return r.write(applyView{Deployment: d, ConnectionString: cs})
}

func (r *Runner) newEngine() (*memory.Engine, error) {
	v, err := semver.Parse(r.config.Engine.DefaultVersion)
	if err != nil {
		return nil, err
	}
	return memory.New(
		memory.WithDefaultImage(r.config.Engine.DefaultImage),
		memory.WithDefaultVersion(v),
		memory.WithBasePort(uint16(r.config.Engine.BasePort)),
	), nil
}

func (r *Runner) write(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return &RunError{Op: "write output", Err: err, ExitCode: ExitOutputError}
	}
	return nil
}

func isRequestError(err error) bool {
	return errors.Is(err, models.ErrMalformedVersion) ||
		errors.Is(err, models.ErrMalformedAddress) ||
		errors.Is(err, models.ErrInvalidEnum) ||
		errors.Is(err, models.ErrUnknownField)
}

// =============================================================================
// Output Views
// =============================================================================

type applyView struct {
	Deployment       *models.Deployment `json:"deployment"`
	ConnectionString string             `json:"connectionString"`
}

// planView renders an engine command for humans and scripts.
type planView struct {
	Name                    *string          `json:"name,omitempty"`
	Image                   *string          `json:"image,omitempty"`
	SkipPullImage           *bool            `json:"skipPullImage,omitempty"`
	MongoDBVersion          string           `json:"mongodbVersion"`
	WaitUntilHealthy        *bool            `json:"waitUntilHealthy,omitempty"`
	WaitUntilHealthyTimeout string           `json:"waitUntilHealthyTimeout,omitempty"`
	CreationSource          string           `json:"creationSource,omitempty"`
	LoadSampleData          *bool            `json:"loadSampleData,omitempty"`
	DoNotTrack              *bool            `json:"doNotTrack,omitempty"`
	TelemetryBaseURL        *string          `json:"telemetryBaseUrl,omitempty"`
	PortBinding             *portBindingView `json:"portBinding,omitempty"`
}

type portBindingView struct {
	Type     string `json:"type"`
	HostIP   string `json:"hostIp"`
	HostPort string `json:"hostPort"`
}

func newPlanView(cmd *engine.CreateDeploymentOptions) planView {
	pv := planView{
		Name:             cmd.Name,
		Image:            cmd.Image,
		SkipPullImage:    cmd.SkipPullImage,
		MongoDBVersion:   version.Display(cmd.MongoDBVersion),
		WaitUntilHealthy: cmd.WaitUntilHealthy,
		LoadSampleData:   cmd.LoadSampleData,
		DoNotTrack:       cmd.DoNotTrack,
		TelemetryBaseURL: cmd.TelemetryBaseURL,
	}
	if cmd.WaitUntilHealthyTimeout != nil {
		pv.WaitUntilHealthyTimeout = cmd.WaitUntilHealthyTimeout.String()
	}
	if cmd.CreationSource != nil {
		pv.CreationSource = cmd.CreationSource.Label()
	}
	if cmd.MongoDBPortBinding != nil {
		hb := cmd.MongoDBPortBinding.HostBinding()
		pv.PortBinding = &portBindingView{
			Type:     cmd.MongoDBPortBinding.Type.String(),
			HostIP:   hb.HostIP,
			HostPort: hb.HostPort,
		}
	}
	return pv
}
