// Package connectivity reports whether the host currently has a usable network transport.
//
// The probe holds no state between calls: every Check re-reads the interface
// table, because connectivity can change between two checks.
package connectivity

import (
	"net"
	"strings"

	"go.uber.org/zap"
)

// Transport is the kind of link an interface provides.
type Transport string

const (
	TransportCellular Transport = "cellular"
	TransportVPN      Transport = "vpn"
	TransportWiFi     Transport = "wifi"
	TransportEthernet Transport = "ethernet"
	TransportUnknown  Transport = "unknown"
)

// DefaultTransports are the transports that count as "connected".
var DefaultTransports = []Transport{TransportCellular, TransportVPN, TransportWiFi, TransportEthernet}

// Interface is the subset of net.Interface the probe needs.
type Interface struct {
	Name      string
	Up        bool
	Loopback  bool
	AddrCount int
}

// Source lists the host's network interfaces.
type Source interface {
	Interfaces() ([]Interface, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]Interface, error)

func (f SourceFunc) Interfaces() ([]Interface, error) { return f() }

// Probe answers "is there a usable network right now".
type Probe struct {
	source     Source
	transports map[Transport]bool
	logger     *zap.Logger
}

// New builds a probe. A nil source reads the host interface table; an empty
// transports list means DefaultTransports.
func New(source Source, transports []Transport, logger *zap.Logger) *Probe {
	if source == nil {
		source = SystemSource{}
	}
	if len(transports) == 0 {
		transports = DefaultTransports
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	accepted := make(map[Transport]bool, len(transports))
	for _, t := range transports {
		accepted[t] = true
	}
	return &Probe{source: source, transports: accepted, logger: logger}
}

// Check reports whether at least one accepted transport is active.
// A failing source is a legitimate "not connected", not an error.
func (p *Probe) Check() bool {
	for _, t := range p.Transports() {
		if p.transports[t] {
			return true
		}
	}
	return false
}

// RunIfConnected runs action only when Check is true and reports whether it ran.
func (p *Probe) RunIfConnected(action func()) bool {
	if action == nil || !p.Check() {
		return false
	}
	action()
	return true
}

// Transports lists the distinct transports of active interfaces in discovery order.
func (p *Probe) Transports() []Transport {
	ifaces, err := p.source.Interfaces()
	if err != nil {
		p.logger.Debug("interface lookup failed", zap.Error(err))
		return nil
	}

	seen := make(map[Transport]bool)
	var out []Transport
	for _, iface := range ifaces {
		if !iface.Up || iface.Loopback || iface.AddrCount == 0 {
			continue
		}
		t := Classify(iface.Name)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

var prefixes = []struct {
	prefix    string
	transport Transport
}{
	{"wl", TransportWiFi},
	{"rmnet", TransportCellular},
	{"wwan", TransportCellular},
	{"ccmni", TransportCellular},
	{"pdp", TransportCellular},
	{"tun", TransportVPN},
	{"tap", TransportVPN},
	{"wg", TransportVPN},
	{"ppp", TransportVPN},
	{"utun", TransportVPN},
	{"ipsec", TransportVPN},
	{"eth", TransportEthernet},
	{"en", TransportEthernet},
}

// Classify maps an interface name to its transport.
func Classify(name string) Transport {
	lower := strings.ToLower(name)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.transport
		}
	}
	return TransportUnknown
}

// SystemSource reads interfaces through the net package.
type SystemSource struct{}

func (SystemSource) Interfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, Interface{
			Name:      iface.Name,
			Up:        iface.Flags&net.FlagUp != 0,
			Loopback:  iface.Flags&net.FlagLoopback != 0,
			AddrCount: len(addrs),
		})
	}
	return out, nil
}
