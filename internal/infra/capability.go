package infra

import (
	"sync"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// MinStandardAPILevel is the first platform API level whose scan samples
// carry a Wi-Fi standard id.
const MinStandardAPILevel = 30

// SnapshotCapability answers the standard-reporting query from the platform
// level recorded in the most recent snapshot. An explicit override wins.
type SnapshotCapability struct {
	mu       sync.RWMutex
	override *bool
	apiLevel int
}

// NewSnapshotCapability creates a capability probe. override may be nil.
func NewSnapshotCapability(override *bool, apiLevel int) *SnapshotCapability {
	c := &SnapshotCapability{apiLevel: apiLevel}
	if override != nil {
		v := *override
		c.override = &v
	}
	return c
}

// Observe records the platform level of a freshly loaded snapshot.
// Snapshots without a level keep the previous one.
func (c *SnapshotCapability) Observe(snap *domain.Snapshot) {
	if snap == nil || snap.APILevel <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiLevel = snap.APILevel
}

// StandardReportingAvailable implements domain.PlatformCapabilities.
func (c *SnapshotCapability) StandardReportingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.override != nil {
		return *c.override
	}
	return c.apiLevel >= MinStandardAPILevel
}

// Ensure SnapshotCapability implements domain.PlatformCapabilities.
var _ domain.PlatformCapabilities = (*SnapshotCapability)(nil)
