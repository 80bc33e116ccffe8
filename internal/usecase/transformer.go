// Package usecase contains application logic over the domain layer.
package usecase

import (
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// Transform maps one scan sample and its rolling average into a WiFiDetail.
// It never fails: absent fields become empty strings, unknown widths and
// standards become their Unknown variants.
func Transform(sample domain.ScanResult, average int, caps domain.PlatformCapabilities) domain.WiFiDetail {
	width := domain.WiFiWidthFromCode(sample.ChannelWidth)
	signal := domain.WiFiSignal{
		PrimaryFrequency:         sample.Frequency,
		CenterFrequency:          width.CalculateCenter(sample.Frequency, sample.CenterFreq0),
		SecondaryCenterFrequency: width.CalculateSecondaryCenter(sample.CenterFreq1),
		Width:                    width,
		Level:                    average,
		Is80211mc:                sample.Is80211mcResponder,
		Standard:                 wiFiStandard(sample, caps),
		Timestamp:                sample.Timestamp,
	}
	identifier := domain.WiFiIdentifier{
		SSID:  string(sample.SSID),
		BSSID: valueOrEmpty(sample.BSSID),
	}
	return domain.WiFiDetail{
		Identifier:   identifier,
		Capabilities: valueOrEmpty(sample.Capabilities),
		Signal:       signal,
	}
}

// TransformAll transforms every cached sample, preserving order.
func TransformAll(results []domain.CacheResult, caps domain.PlatformCapabilities) []domain.WiFiDetail {
	details := make([]domain.WiFiDetail, len(results))
	for i, r := range results {
		details[i] = Transform(r.ScanResult, r.Average, caps)
	}
	return details
}

// TransformConnection maps the association and lease snapshots into a
// WiFiConnection, or EmptyWiFiConnection when not associated.
func TransformConnection(info *domain.WifiInfo, lease *domain.DhcpInfo) domain.WiFiConnection {
	if info == nil || info.NetworkID == domain.NotAssociated {
		return domain.EmptyWiFiConnection
	}

	var ip, gateway string
	if lease != nil {
		ip = domain.ConvertIPv4Address(lease.IPAddress)
		gateway = domain.ConvertIPv4Address(lease.Gateway)
	}

	return domain.WiFiConnection{
		Identifier: domain.WiFiIdentifier{
			SSID:  domain.ConvertSSID(valueOrEmpty(info.SSID)),
			BSSID: valueOrEmpty(info.BSSID),
		},
		IPAddress: ip + " " + gateway,
		LinkSpeed: info.LinkSpeed,
	}
}

func wiFiStandard(sample domain.ScanResult, caps domain.PlatformCapabilities) domain.WiFiStandard {
	if caps == nil || !caps.StandardReportingAvailable() {
		return domain.StandardUnknown
	}
	return domain.WiFiStandardFromID(sample.WiFiStandard)
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Transformer reads the scan cache and produces domain values.
type Transformer struct {
	cache  domain.ScanCache
	caps   domain.PlatformCapabilities
	logger *zap.Logger
}

// NewTransformer creates a transformer over the given cache.
func NewTransformer(cache domain.ScanCache, caps domain.PlatformCapabilities, logger *zap.Logger) *Transformer {
	return &Transformer{
		cache:  cache,
		caps:   caps,
		logger: logger,
	}
}

// TransformWifiInfo transforms the cached association.
func (t *Transformer) TransformWifiInfo() domain.WiFiConnection {
	return TransformConnection(t.cache.WifiInfo(), t.cache.DhcpInfo())
}

// TransformCacheResults transforms every cached sample.
func (t *Transformer) TransformCacheResults() []domain.WiFiDetail {
	return TransformAll(t.cache.ScanResults(), t.caps)
}

// TransformToWiFiData runs a full pass over the cache.
func (t *Transformer) TransformToWiFiData() domain.WiFiData {
	data := domain.WiFiData{
		Details:    t.TransformCacheResults(),
		Connection: t.TransformWifiInfo(),
	}
	t.logger.Debug("transformed scan cache",
		zap.Int("networks", len(data.Details)),
		zap.Bool("connected", data.Connection.IsConnected()))
	return data
}
