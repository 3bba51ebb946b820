// Package provenance converts creation sources between the external schema
// and the engine model.
//
// Known sources map to a fixed upper-case token in both directions. Anything
// else travels through the Other type carrying its raw text verbatim, so a
// source introduced by a newer engine still projects, and feeds back, without
// loss.
package provenance

import (
	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
)

// ToEngine converts an external creation source into the engine model.
//
// Known types map purely off the type; their Source text is informational and
// ignored. Other, and any type this version does not recognise, becomes an
// engine.UnknownSource holding Source exactly.
func ToEngine(cs models.CreationSource) engine.CreationSource {
	if !cs.Type.Known() {
		return engine.UnknownSource{Value: cs.Source}
	}

	switch cs.Type {
	case models.CreationSourceTypeAtlasCLI:
		return engine.AtlasCLISource{}
	case models.CreationSourceTypeContainer:
		return engine.ContainerSource{}
	default:
		return engine.MCPServerSource{}
	}
}

// ToModel converts an engine creation source into the external schema.
// A nil source has no projection.
func ToModel(cs engine.CreationSource) *models.CreationSource {
	switch s := cs.(type) {
	case nil:
		return nil
	case engine.AtlasCLISource:
		return &models.CreationSource{Type: models.CreationSourceTypeAtlasCLI, Source: s.Label()}
	case engine.ContainerSource:
		return &models.CreationSource{Type: models.CreationSourceTypeContainer, Source: s.Label()}
	case engine.MCPServerSource:
		return &models.CreationSource{Type: models.CreationSourceTypeMCPServer, Source: s.Label()}
	case engine.UnknownSource:
		return &models.CreationSource{Type: models.CreationSourceTypeOther, Source: s.Value}
	default:
		return &models.CreationSource{Type: models.CreationSourceTypeOther, Source: s.Label()}
	}
}
