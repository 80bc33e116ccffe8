// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"os"
	"path/filepath"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/infra"
)

// SnapshotBuilder assembles scanner snapshots for tests.
type SnapshotBuilder struct {
	snap domain.Snapshot
}

// NewSnapshotBuilder starts an empty snapshot for country.
func NewSnapshotBuilder(country string) *SnapshotBuilder {
	return &SnapshotBuilder{snap: domain.Snapshot{Country: country, Scans: []domain.ScanResult{}}}
}

// WithAPILevel sets the reported platform level.
func (b *SnapshotBuilder) WithAPILevel(level int) *SnapshotBuilder {
	b.snap.APILevel = level
	return b
}

// WithNetwork adds one scan sample.
func (b *SnapshotBuilder) WithNetwork(ssid, bssid string, frequency, widthCode, center0, level int) *SnapshotBuilder {
	b.snap.Scans = append(b.snap.Scans, domain.ScanResult{
		SSID:         []byte(ssid),
		BSSID:        &bssid,
		Frequency:    frequency,
		ChannelWidth: widthCode,
		CenterFreq0:  center0,
		Level:        level,
	})
	return b
}

// WithScan adds a fully specified scan sample.
func (b *SnapshotBuilder) WithScan(r domain.ScanResult) *SnapshotBuilder {
	b.snap.Scans = append(b.snap.Scans, r)
	return b
}

// Associated marks the device as connected to ssid with the given lease.
func (b *SnapshotBuilder) Associated(ssid, bssid string, linkSpeed int, ip, gateway uint32) *SnapshotBuilder {
	quoted := `"` + ssid + `"`
	b.snap.WifiInfo = &domain.WifiInfo{
		SSID:      &quoted,
		BSSID:     &bssid,
		NetworkID: 1,
		LinkSpeed: linkSpeed,
	}
	b.snap.DhcpInfo = &domain.DhcpInfo{IPAddress: ip, Gateway: gateway}
	return b
}

// Disassociated marks the device as not connected.
func (b *SnapshotBuilder) Disassociated() *SnapshotBuilder {
	b.snap.WifiInfo = &domain.WifiInfo{NetworkID: domain.NotAssociated}
	b.snap.DhcpInfo = nil
	return b
}

// Build returns a copy of the snapshot.
func (b *SnapshotBuilder) Build() *domain.Snapshot {
	snap := b.snap
	snap.Scans = append([]domain.ScanResult(nil), b.snap.Scans...)
	return &snap
}

// WriteTo writes the snapshot to path in the format implied by its extension.
func (b *SnapshotBuilder) WriteTo(path string) error {
	data, err := infra.EncodeSnapshot(b.Build(), infra.FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
