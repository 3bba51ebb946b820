// Package options assembles engine commands from external requests.
//
// Assembly is translation only. Every field maps independently; the version,
// port binding, creation source and health-check timeout are converted, the
// rest pass through untouched. Nothing is defaulted here: a nil field stays
// nil for the engine to decide. If any conversion fails no command is
// produced.
package options

import (
	"time"

	"github.com/artpar/atlaslocal/internal/core/binding"
	"github.com/artpar/atlaslocal/internal/core/provenance"
	"github.com/artpar/atlaslocal/internal/core/version"
	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
)

// Assemble builds the engine creation command for a request.
//
// Example:
//
//	cmd, err := options.Assemble(models.CreateDeploymentOptions{
//	    Name:           ptr("local1"),
//	    MongoDBVersion: ptr("8.0.0"),
//	})
func Assemble(req models.CreateDeploymentOptions) (*engine.CreateDeploymentOptions, error) {
	mongodbVersion, err := version.Resolve(req.MongoDBVersion)
	if err != nil {
		return nil, err
	}

	var portBinding *engine.PortBinding
	if req.MongoDBPortBinding != nil {
		b, err := binding.ToEngine(*req.MongoDBPortBinding)
		if err != nil {
			return nil, err
		}
		portBinding = &b
	}

	var creationSource engine.CreationSource
	if req.CreationSource != nil {
		creationSource = provenance.ToEngine(*req.CreationSource)
	}

	return &engine.CreateDeploymentOptions{
		Name: req.Name,

		Image:          req.Image,
		SkipPullImage:  req.SkipPullImage,
		MongoDBVersion: mongodbVersion,

		WaitUntilHealthy:        req.WaitUntilHealthy,
		WaitUntilHealthyTimeout: Timeout(req.WaitUntilHealthyTimeout),
		CreationSource:          creationSource,

		LocalSeedLocation:             req.LocalSeedLocation,
		LoadSampleData:                req.LoadSampleData,
		MongoDBInitDBDatabase:         req.MongoDBInitDBDatabase,
		MongoDBInitDBRootPasswordFile: req.MongoDBInitDBRootPasswordFile,
		MongoDBInitDBRootPassword:     req.MongoDBInitDBRootPassword,
		MongoDBInitDBRootUsernameFile: req.MongoDBInitDBRootUsernameFile,
		MongoDBInitDBRootUsername:     req.MongoDBInitDBRootUsername,
		VoyageAPIKey:                  req.VoyageAPIKey,

		MongotLogFile: req.MongotLogFile,
		RunnerLogFile: req.RunnerLogFile,

		DoNotTrack:       req.DoNotTrack,
		TelemetryBaseURL: req.TelemetryBaseURL,

		MongoDBPortBinding: portBinding,
	}, nil
}

// Timeout converts a health-check timeout in whole seconds. Zero is kept as
// an explicit "do not wait"; nil stays nil.
func Timeout(seconds *uint32) *time.Duration {
	if seconds == nil {
		return nil
	}
	d := time.Duration(*seconds) * time.Second
	return &d
}

// ConnectionString maps connection-string options onto the engine's.
func ConnectionString(req models.GetConnectionStringOptions) engine.GetConnectionStringOptions {
	return engine.GetConnectionStringOptions{
		ContainerIDOrName: req.ContainerIDOrName,
		DBUsername:        req.DBUsername,
		DBPassword:        req.DBPassword,
		Verify:            req.Verify,
	}
}
