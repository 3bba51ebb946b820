// Package binding converts port bindings between the external schema and the
// engine model.
//
// Loopback and any-interface bindings carry a fixed display address on the
// external side that is derived from the type, not read from input. Specific
// bindings must carry an IP literal.
package binding

import (
	"fmt"
	"net/netip"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
)

const field = "mongodbPortBinding"

// ToEngine converts an external binding into the engine model.
func ToEngine(b models.PortBinding) (engine.PortBinding, error) {
	if !b.Type.Valid() {
		return engine.PortBinding{}, models.NewFieldError(field+".type", string(b.Type),
			fmt.Sprintf("must be one of %s, %s, %s",
				models.BindingTypeLoopback, models.BindingTypeAnyInterface, models.BindingTypeSpecific),
			models.ErrInvalidEnum)
	}

	switch b.Type {
	case models.BindingTypeLoopback:
		return engine.LoopbackBinding(b.Port), nil
	case models.BindingTypeAnyInterface:
		return engine.AnyInterfaceBinding(b.Port), nil
	}

	addr, err := ParseAddr(b.IP)
	if err != nil {
		return engine.PortBinding{}, err
	}
	return engine.SpecificBinding(addr, b.Port), nil
}

// ToModel converts an engine binding into the external schema.
func ToModel(b engine.PortBinding) models.PortBinding {
	switch b.Type {
	case engine.BindingLoopback:
		return models.PortBinding{Type: models.BindingTypeLoopback, IP: models.LoopbackAddress, Port: b.Port}
	case engine.BindingAnyInterface:
		return models.PortBinding{Type: models.BindingTypeAnyInterface, IP: models.AnyInterfaceAddress, Port: b.Port}
	default:
		return models.PortBinding{Type: models.BindingTypeSpecific, IP: b.Addr.String(), Port: b.Port}
	}
}

// ParseAddr parses an IPv4 or IPv6 literal. Zoned IPv6 addresses are not
// literals a port can be published on and are rejected.
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, models.NewFieldError(field+".ip", s, "not an IP address", models.ErrMalformedAddress)
	}
	if addr.Zone() != "" {
		return netip.Addr{}, models.NewFieldError(field+".ip", s, "IP address must not carry a zone", models.ErrMalformedAddress)
	}
	return addr, nil
}
