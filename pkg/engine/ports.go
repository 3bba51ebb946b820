package engine

import (
	"net/netip"
	"strconv"

	"github.com/docker/go-connections/nat"
)

// BindingType selects the host interface a deployment's port is published on.
type BindingType int

const (
	BindingLoopback BindingType = iota
	BindingAnyInterface
	BindingSpecific
)

func (t BindingType) String() string {
	switch t {
	case BindingLoopback:
		return "loopback"
	case BindingAnyInterface:
		return "any-interface"
	case BindingSpecific:
		return "specific"
	default:
		return "BindingType(" + strconv.Itoa(int(t)) + ")"
	}
}

var (
	loopbackAddr     = netip.AddrFrom4([4]byte{127, 0, 0, 1})
	anyInterfaceAddr = netip.IPv4Unspecified()
)

// PortBinding is the host side of the MongoDB port mapping.
// Addr is only set for BindingSpecific.
type PortBinding struct {
	Type BindingType
	Addr netip.Addr
	Port uint16
}

// LoopbackBinding publishes port on 127.0.0.1.
func LoopbackBinding(port uint16) PortBinding {
	return PortBinding{Type: BindingLoopback, Port: port}
}

// AnyInterfaceBinding publishes port on every host interface.
func AnyInterfaceBinding(port uint16) PortBinding {
	return PortBinding{Type: BindingAnyInterface, Port: port}
}

// SpecificBinding publishes port on addr only.
func SpecificBinding(addr netip.Addr, port uint16) PortBinding {
	return PortBinding{Type: BindingSpecific, Addr: addr, Port: port}
}

// HostAddr returns the host address the binding listens on.
func (b PortBinding) HostAddr() netip.Addr {
	switch b.Type {
	case BindingLoopback:
		return loopbackAddr
	case BindingAnyInterface:
		return anyInterfaceAddr
	default:
		return b.Addr
	}
}

// HostBinding renders the binding the way the Docker API publishes it.
func (b PortBinding) HostBinding() nat.PortBinding {
	return nat.PortBinding{
		HostIP:   b.HostAddr().String(),
		HostPort: strconv.FormatUint(uint64(b.Port), 10),
	}
}

// PortBindingFromHost parses a Docker host binding, as reported by container
// inspection, back into a PortBinding. Docker reports an any-interface port
// as 0.0.0.0 and as ::, so both read back as BindingAnyInterface.
func PortBindingFromHost(hb nat.PortBinding) (PortBinding, error) {
	port, err := strconv.ParseUint(hb.HostPort, 10, 16)
	if err != nil {
		return PortBinding{}, NewEngineError("PortBindingFromHost", hb.HostPort, "invalid host port", ErrInvalidHostBinding)
	}

	if hb.HostIP == "" {
		return AnyInterfaceBinding(uint16(port)), nil
	}

	addr, err := netip.ParseAddr(hb.HostIP)
	if err != nil {
		return PortBinding{}, NewEngineError("PortBindingFromHost", hb.HostIP, "invalid host ip", ErrInvalidHostBinding)
	}

	switch addr {
	case loopbackAddr:
		return LoopbackBinding(uint16(port)), nil
	case anyInterfaceAddr, netip.IPv6Unspecified():
		return AnyInterfaceBinding(uint16(port)), nil
	default:
		return SpecificBinding(addr, uint16(port)), nil
	}
}
