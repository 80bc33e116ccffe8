// Package infra implements infrastructure concerns (scan cache, snapshot
// files, interface leases, capability probes).
package infra

import (
	"sync"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// DefaultCacheSize is the number of scans averaged per network.
const DefaultCacheSize = 3

// ScanCache implements domain.ScanCache with a rolling window of scans.
// The level reported for a network is the integer mean of its levels across
// the retained scans.
type ScanCache struct {
	mu    sync.RWMutex
	size  int
	scans [][]domain.ScanResult // newest first
	info  *domain.WifiInfo
	lease *domain.DhcpInfo
}

// NewScanCache creates a cache keeping the last size scans.
// Sizes below 1 use DefaultCacheSize.
func NewScanCache(size int) *ScanCache {
	if size < 1 {
		size = DefaultCacheSize
	}
	return &ScanCache{size: size}
}

// Add records one complete scan, evicting the oldest when full.
func (c *ScanCache) Add(results []domain.ScanResult) {
	scan := make([]domain.ScanResult, len(results))
	copy(scan, results)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.scans = append([][]domain.ScanResult{scan}, c.scans...)
	if len(c.scans) > c.size {
		c.scans = c.scans[:c.size]
	}
}

// SetWifiInfo replaces the cached association. nil clears it.
func (c *ScanCache) SetWifiInfo(info *domain.WifiInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = cloneWifiInfo(info)
}

// SetDhcpInfo replaces the cached lease. nil clears it.
func (c *ScanCache) SetDhcpInfo(lease *domain.DhcpInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lease == nil {
		c.lease = nil
		return
	}
	l := *lease
	c.lease = &l
}

// Clear drops all scans and association state.
func (c *ScanCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scans = nil
	c.info = nil
	c.lease = nil
}

// Len returns the number of retained scans.
func (c *ScanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scans)
}

// ScanResults returns the newest sample of every network seen in the window.
// Networks from the newest scan come first in scan order, followed by
// networks only present in older scans.
func (c *ScanCache) ScanResults() []domain.CacheResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type acc struct {
		sample domain.ScanResult
		sum    int
		count  int
	}
	var order []string
	seen := make(map[string]*acc)

	for _, scan := range c.scans {
		for _, r := range scan {
			key := cacheKey(r)
			a, ok := seen[key]
			if !ok {
				a = &acc{sample: r}
				seen[key] = a
				order = append(order, key)
			}
			a.sum += r.Level
			a.count++
		}
	}

	results := make([]domain.CacheResult, 0, len(order))
	for _, key := range order {
		a := seen[key]
		results = append(results, domain.CacheResult{
			ScanResult: a.sample,
			Average:    a.sum / a.count,
		})
	}
	return results
}

// WifiInfo returns a copy of the cached association.
func (c *ScanCache) WifiInfo() *domain.WifiInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneWifiInfo(c.info)
}

// DhcpInfo returns a copy of the cached lease.
func (c *ScanCache) DhcpInfo() *domain.DhcpInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lease == nil {
		return nil
	}
	l := *c.lease
	return &l
}

// cacheKey identifies a network by BSSID, falling back to SSID for samples
// the platform delivered without one. A nil and an empty BSSID are the same
// missing value, matching how the transformer renders them.
func cacheKey(r domain.ScanResult) string {
	if r.BSSID != nil && *r.BSSID != "" {
		return "bssid:" + *r.BSSID
	}
	return "ssid:" + string(r.SSID)
}

func cloneWifiInfo(info *domain.WifiInfo) *domain.WifiInfo {
	if info == nil {
		return nil
	}
	i := *info
	return &i
}

// Ensure ScanCache implements domain.ScanCache.
var _ domain.ScanCache = (*ScanCache)(nil)
