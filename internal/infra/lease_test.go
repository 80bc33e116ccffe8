package infra

import (
	"context"
	"errors"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeInterfaces(list psnet.InterfaceStatList, err error) func(context.Context) (psnet.InterfaceStatList, error) {
	return func(context.Context) (psnet.InterfaceStatList, error) {
		return list, err
	}
}

func TestInterfaceLeaseProvider_Lease(t *testing.T) {
	list := psnet.InterfaceStatList{
		{Name: "lo", Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}}},
		{Name: "wlan0", Addrs: psnet.InterfaceAddrList{
			{Addr: "fe80::1/64"},
			{Addr: "192.168.1.1/24"},
		}},
		{Name: "wlan1"},
	}

	tests := []struct {
		name    string
		iface   string
		want    uint32
		wantNil bool
		wantErr error
	}{
		{name: "ipv4 after ipv6", iface: "wlan0", want: 3232235777},
		{name: "loopback", iface: "lo", want: 2130706433},
		{name: "no addresses", iface: "wlan1", wantNil: true},
		{name: "missing", iface: "eth9", wantErr: ErrInterfaceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewInterfaceLeaseProvider(tt.iface)
			p.interfaces = fakeInterfaces(list, nil)

			lease, err := p.Lease(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, lease)
				return
			}
			require.NotNil(t, lease)
			assert.Equal(t, tt.want, lease.IPAddress)
			assert.Zero(t, lease.Gateway)
		})
	}
}

func TestInterfaceLeaseProvider_ListError(t *testing.T) {
	p := NewInterfaceLeaseProvider("wlan0")
	p.interfaces = fakeInterfaces(nil, errors.New("boom"))

	_, err := p.Lease(context.Background())
	assert.ErrorContains(t, err, "failed to list interfaces")
}

func TestParseInterfaceAddr(t *testing.T) {
	assert.Equal(t, "10.0.0.2", parseInterfaceAddr("10.0.0.2/8").String())
	assert.Equal(t, "10.0.0.3", parseInterfaceAddr("10.0.0.3").String())
	assert.Nil(t, parseInterfaceAddr("::1/128"))
	assert.Nil(t, parseInterfaceAddr("garbage"))
}
