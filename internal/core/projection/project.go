// Package projection maps engine deployment records onto the external result
// schema.
//
// Projection never fails: every value the engine can report has an external
// form. Enumerations map one to one, the version is rendered as its display
// string, and everything else is copied verbatim.
package projection

import (
	"github.com/artpar/atlaslocal/internal/core/binding"
	"github.com/artpar/atlaslocal/internal/core/provenance"
	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
)

// Deployment projects a single engine record.
func Deployment(d engine.Deployment) models.Deployment {
	var portBindings *models.PortBinding
	if d.PortBindings != nil {
		b := binding.ToModel(*d.PortBindings)
		portBindings = &b
	}

	return models.Deployment{
		ContainerID: d.ContainerID,
		Name:        d.Name,

		State:        State(d.State),
		PortBindings: portBindings,

		MongoDBType:    MongoDBType(d.MongoDBType),
		MongoDBVersion: d.MongoDBVersion.String(),

		CreationSource: provenance.ToModel(d.CreationSource),

		LocalSeedLocation:             d.LocalSeedLocation,
		MongoDBInitDBDatabase:         d.MongoDBInitDBDatabase,
		MongoDBInitDBRootPasswordFile: d.MongoDBInitDBRootPasswordFile,
		MongoDBInitDBRootPassword:     d.MongoDBInitDBRootPassword,
		MongoDBInitDBRootUsernameFile: d.MongoDBInitDBRootUsernameFile,
		MongoDBInitDBRootUsername:     d.MongoDBInitDBRootUsername,

		MongotLogFile: d.MongotLogFile,
		RunnerLogFile: d.RunnerLogFile,

		DoNotTrack:       d.DoNotTrack,
		TelemetryBaseURL: d.TelemetryBaseURL,
	}
}

// Deployments projects a list of records, preserving order.
// The result is never nil.
func Deployments(ds []engine.Deployment) []models.Deployment {
	result := make([]models.Deployment, 0, len(ds))
	for _, d := range ds {
		result = append(result, Deployment(d))
	}
	return result
}

// State maps an engine state. Values outside the Docker state set are passed
// through as-is.
func State(s engine.State) models.State {
	switch s {
	case engine.StateCreated:
		return models.StateCreated
	case engine.StateDead:
		return models.StateDead
	case engine.StateExited:
		return models.StateExited
	case engine.StatePaused:
		return models.StatePaused
	case engine.StateRemoving:
		return models.StateRemoving
	case engine.StateRestarting:
		return models.StateRestarting
	case engine.StateRunning:
		return models.StateRunning
	default:
		return models.State(s)
	}
}

// MongoDBType maps an engine server edition.
func MongoDBType(t engine.MongoDBType) models.MongoDBType {
	switch t {
	case engine.MongoDBTypeCommunity:
		return models.MongoDBTypeCommunity
	case engine.MongoDBTypeEnterprise:
		return models.MongoDBTypeEnterprise
	default:
		return models.MongoDBType(t)
	}
}
