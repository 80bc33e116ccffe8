package infra

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// ErrInterfaceNotFound is returned when the configured interface does not exist.
var ErrInterfaceNotFound = errors.New("interface not found")

// InterfaceLeaseProvider implements domain.LeaseProvider by reading the first
// IPv4 address of a local interface. The gateway is not visible there and is
// always reported as 0.
type InterfaceLeaseProvider struct {
	name       string
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
}

// NewInterfaceLeaseProvider creates a provider for the named interface.
func NewInterfaceLeaseProvider(name string) *InterfaceLeaseProvider {
	return &InterfaceLeaseProvider{
		name:       name,
		interfaces: psnet.InterfacesWithContext,
	}
}

// Lease returns the interface address, or nil when it has no IPv4 address.
func (p *InterfaceLeaseProvider) Lease(ctx context.Context) (*domain.DhcpInfo, error) {
	list, err := p.interfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	return leaseFromInterfaces(list, p.name)
}

func leaseFromInterfaces(list psnet.InterfaceStatList, name string) (*domain.DhcpInfo, error) {
	for _, iface := range list {
		if iface.Name != name {
			continue
		}
		for _, addr := range iface.Addrs {
			ip := parseInterfaceAddr(addr.Addr)
			if ip == nil {
				continue
			}
			return &domain.DhcpInfo{IPAddress: binary.BigEndian.Uint32(ip)}, nil
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// parseInterfaceAddr accepts "a.b.c.d/nn" or a bare address and returns the
// 4-byte form, or nil for anything that is not IPv4.
func parseInterfaceAddr(s string) net.IP {
	ip, _, err := net.ParseCIDR(s)
	if err != nil {
		ip = net.ParseIP(s)
	}
	if ip == nil {
		return nil
	}
	return ip.To4()
}

// Ensure InterfaceLeaseProvider implements domain.LeaseProvider.
var _ domain.LeaseProvider = (*InterfaceLeaseProvider)(nil)
