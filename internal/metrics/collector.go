// Package metrics exposes the latest Wi-Fi scan as Prometheus metrics.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// Collector implements prometheus.Collector over the most recent WiFiData.
type Collector struct {
	mu      sync.Mutex
	data    domain.WiFiData
	country string
	engine  domain.ChannelRuleEngine

	// Scan metrics
	networksDesc *prometheus.Desc
	levelDesc    *prometheus.Desc
	distanceDesc *prometheus.Desc

	// Connection metrics
	connectedDesc *prometheus.Desc
	linkSpeedDesc *prometheus.Desc

	// Regulatory metrics
	allowedChannelsDesc *prometheus.Desc
}

// NewCollector creates a collector. engine may be nil, in which case the
// allowed-channel metric is not emitted.
func NewCollector(country string, engine domain.ChannelRuleEngine) *Collector {
	networkLabels := []string{"ssid", "bssid"}

	return &Collector{
		country: country,
		engine:  engine,

		networksDesc: prometheus.NewDesc(
			"wifi_networks",
			"Number of networks in the latest scan",
			nil,
			nil,
		),
		levelDesc: prometheus.NewDesc(
			"wifi_signal_level_dbm",
			"Averaged signal level in dBm",
			append(networkLabels, "channel", "width", "standard"),
			nil,
		),
		distanceDesc: prometheus.NewDesc(
			"wifi_signal_distance_meters",
			"Estimated distance to the access point in metres",
			networkLabels,
			nil,
		),

		connectedDesc: prometheus.NewDesc(
			"wifi_connected",
			"Whether the device is associated with a network",
			nil,
			nil,
		),
		linkSpeedDesc: prometheus.NewDesc(
			"wifi_connection_link_speed_mbps",
			"Link speed of the current association in Mbps",
			networkLabels,
			nil,
		),

		allowedChannelsDesc: prometheus.NewDesc(
			"wifi_allowed_channels",
			"Number of 5GHz channels the country allows",
			[]string{"country"},
			nil,
		),
	}
}

// Publish implements domain.DataSink.
func (c *Collector) Publish(data domain.WiFiData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.networksDesc
	ch <- c.levelDesc
	ch <- c.distanceDesc
	ch <- c.connectedDesc
	ch <- c.linkSpeedDesc
	ch <- c.allowedChannelsDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(c.networksDesc, prometheus.GaugeValue, float64(len(c.data.Details)))

	// A registry rejects repeated label sets, so the first detail wins.
	levels := make(map[[5]string]bool)
	distances := make(map[[2]string]bool)
	for _, d := range c.data.Details {
		ssid, bssid := d.Identifier.SSID, d.Identifier.BSSID
		s := d.Signal

		levelKey := [5]string{ssid, bssid, strconv.Itoa(int(s.PrimaryChannel())), s.Width.String(), s.Standard.String()}
		if !levels[levelKey] {
			levels[levelKey] = true
			ch <- prometheus.MustNewConstMetric(c.levelDesc, prometheus.GaugeValue, float64(s.Level), levelKey[:]...)
		}

		distanceKey := [2]string{ssid, bssid}
		if !distances[distanceKey] {
			distances[distanceKey] = true
			ch <- prometheus.MustNewConstMetric(c.distanceDesc, prometheus.GaugeValue, s.Distance(), distanceKey[:]...)
		}
	}

	conn := c.data.Connection
	connected := 0.0
	if conn.IsConnected() {
		connected = 1.0
		ch <- prometheus.MustNewConstMetric(c.linkSpeedDesc, prometheus.GaugeValue, float64(conn.LinkSpeed),
			conn.Identifier.SSID, conn.Identifier.BSSID)
	}
	ch <- prometheus.MustNewConstMetric(c.connectedDesc, prometheus.GaugeValue, connected)

	if c.engine != nil {
		code := string(domain.NormalizeCountryCode(c.country))
		allowed := c.engine.FindChannels(code)
		ch <- prometheus.MustNewConstMetric(c.allowedChannelsDesc, prometheus.GaugeValue, float64(len(allowed)), code)
	}
}

// Ensure Collector implements domain.DataSink and prometheus.Collector.
var (
	_ domain.DataSink      = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)
