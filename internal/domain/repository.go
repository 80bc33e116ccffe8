package domain

import "context"

// ScanCache holds the latest scan samples and association state.
// Implementation: in-memory rolling average per BSSID.
type ScanCache interface {
	// ScanResults returns the latest sample per network with its average level.
	ScanResults() []CacheResult

	// WifiInfo returns the current association, or nil when unavailable.
	WifiInfo() *WifiInfo

	// DhcpInfo returns the current lease, or nil when unavailable.
	DhcpInfo() *DhcpInfo
}

// PlatformCapabilities answers capability queries about the running platform.
type PlatformCapabilities interface {
	// StandardReportingAvailable reports whether scan samples carry a Wi-Fi
	// standard id.
	StandardReportingAvailable() bool
}

// CapabilityFunc adapts a plain function to PlatformCapabilities.
type CapabilityFunc func() bool

func (f CapabilityFunc) StandardReportingAvailable() bool {
	return f()
}

// ChannelRuleEngine computes the legal 5GHz channel set for a country.
type ChannelRuleEngine interface {
	// FindChannels returns the allowed channels in ascending order.
	FindChannels(countryCode string) []Channel
}

// RuleKind says whether a regulatory rule removes or adds channels.
type RuleKind string

const (
	RuleExclude RuleKind = "exclude"
	RuleInclude RuleKind = "include"
)

// RuleInfo is the read-only view of one regulatory rule.
type RuleInfo struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Kind      RuleKind      `json:"kind" yaml:"kind"`
	Countries []CountryCode `json:"countries" yaml:"countries"`
	Channels  []Channel     `json:"channels" yaml:"channels"`
}

// ChannelRuleStore provides access to the configured regulatory rules.
type ChannelRuleStore interface {
	// GetAll returns every rule in evaluation order.
	GetAll() []RuleInfo

	// GetByID returns a single rule.
	GetByID(id string) (*RuleInfo, error)

	// List returns rule ids in evaluation order.
	List() []string
}

// Snapshot is one capture of scanner and association state.
type Snapshot struct {
	Country   string       `json:"country,omitempty" yaml:"country,omitempty"`
	Interface string       `json:"interface,omitempty" yaml:"interface,omitempty"`
	APILevel  int          `json:"api_level,omitempty" yaml:"api_level,omitempty"`
	Scans     []ScanResult `json:"scans" yaml:"scans"`
	WifiInfo  *WifiInfo    `json:"wifi_info,omitempty" yaml:"wifi_info,omitempty"`
	DhcpInfo  *DhcpInfo    `json:"dhcp_info,omitempty" yaml:"dhcp_info,omitempty"`
}

// SnapshotSource produces snapshots.
// Implementation: JSON/YAML file re-read on every Load.
type SnapshotSource interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// LeaseProvider yields the lease of a local interface.
// Implementation: gopsutil interface addresses.
type LeaseProvider interface {
	// Lease returns nil without error when the interface has no IPv4 address.
	Lease(ctx context.Context) (*DhcpInfo, error)
}

// DataSink receives every transformation pass.
type DataSink interface {
	Publish(data WiFiData)
}
