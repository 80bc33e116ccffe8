package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

type staticEngine []domain.Channel

func (e staticEngine) FindChannels(string) []domain.Channel { return e }

func sampleData() domain.WiFiData {
	return domain.WiFiData{
		Details: []domain.WiFiDetail{
			{
				Identifier: domain.WiFiIdentifier{SSID: "Home", BSSID: "aa:bb"},
				Signal: domain.WiFiSignal{
					PrimaryFrequency: 5180,
					CenterFrequency:  5210,
					Width:            domain.Width80,
					Level:            -50,
					Standard:         domain.StandardAX,
				},
			},
			{
				Identifier: domain.WiFiIdentifier{SSID: "", BSSID: "cc:dd"},
				Signal: domain.WiFiSignal{
					PrimaryFrequency: 2437,
					CenterFrequency:  2437,
					Width:            domain.Width20,
					Level:            -60,
				},
			},
		},
		Connection: domain.WiFiConnection{
			Identifier: domain.WiFiIdentifier{SSID: "Home", BSSID: "aa:bb"},
			IPAddress:  "192.168.1.1 192.168.0.1",
			LinkSpeed:  866,
		},
	}
}

func TestCollector_Empty(t *testing.T) {
	c := NewCollector("US", nil)

	expected := `
# HELP wifi_connected Whether the device is associated with a network
# TYPE wifi_connected gauge
wifi_connected 0
# HELP wifi_networks Number of networks in the latest scan
# TYPE wifi_networks gauge
wifi_networks 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"wifi_connected", "wifi_networks"))
	assert.Equal(t, 2, testutil.CollectAndCount(c))
}

func TestCollector_Publish(t *testing.T) {
	c := NewCollector("de", staticEngine{36, 40, 44})
	c.Publish(sampleData())

	expected := `
# HELP wifi_signal_level_dbm Averaged signal level in dBm
# TYPE wifi_signal_level_dbm gauge
wifi_signal_level_dbm{bssid="aa:bb",channel="36",ssid="Home",standard="802.11ax",width="80MHz"} -50
wifi_signal_level_dbm{bssid="cc:dd",channel="6",ssid="",standard="unknown",width="20MHz"} -60
# HELP wifi_connection_link_speed_mbps Link speed of the current association in Mbps
# TYPE wifi_connection_link_speed_mbps gauge
wifi_connection_link_speed_mbps{bssid="aa:bb",ssid="Home"} 866
# HELP wifi_allowed_channels Number of 5GHz channels the country allows
# TYPE wifi_allowed_channels gauge
wifi_allowed_channels{country="DE"} 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"wifi_signal_level_dbm", "wifi_connection_link_speed_mbps", "wifi_allowed_channels"))

	assert.Equal(t, 2, testutil.CollectAndCount(c, "wifi_signal_distance_meters"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "wifi_connected"))
}

func TestCollector_PublishReplaces(t *testing.T) {
	c := NewCollector("US", nil)
	c.Publish(sampleData())
	c.Publish(domain.WiFiData{Connection: domain.EmptyWiFiConnection})

	assert.Zero(t, testutil.CollectAndCount(c, "wifi_signal_level_dbm"))
	assert.Zero(t, testutil.CollectAndCount(c, "wifi_connection_link_speed_mbps"))
}

func TestCollector_DuplicateLabelSets(t *testing.T) {
	detail := func(level int) domain.WiFiDetail {
		return domain.WiFiDetail{
			Identifier: domain.WiFiIdentifier{SSID: "X"},
			Signal: domain.WiFiSignal{
				PrimaryFrequency: 5180,
				CenterFrequency:  5180,
				Width:            domain.Width20,
				Level:            level,
			},
		}
	}
	c := NewCollector("US", staticEngine{36})
	c.Publish(domain.WiFiData{
		Details:    []domain.WiFiDetail{detail(-40), detail(-70)},
		Connection: domain.EmptyWiFiConnection,
	})

	_, err := NewRegistry(c).Gather()
	require.NoError(t, err)

	expected := `
# HELP wifi_signal_level_dbm Averaged signal level in dBm
# TYPE wifi_signal_level_dbm gauge
wifi_signal_level_dbm{bssid="",channel="36",ssid="X",standard="unknown",width="20MHz"} -40
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "wifi_signal_level_dbm"))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "wifi_signal_distance_meters"))

	path := filepath.Join(t.TempDir(), "wifimon.prom")
	require.NoError(t, NewTextfileWriter(path, NewRegistry(c)).WriteMetrics())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wifi_networks 2")
}

func TestTextfileWriter(t *testing.T) {
	c := NewCollector("US", staticEngine{36})
	c.Publish(sampleData())

	path := filepath.Join(t.TempDir(), "wifimon.prom")
	w := NewTextfileWriter(path, NewRegistry(c))
	require.NoError(t, w.WriteMetrics())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wifi_networks 2")
	assert.Contains(t, string(data), `wifi_allowed_channels{country="US"} 1`)
}

func TestTextfileWriter_BadPath(t *testing.T) {
	w := NewTextfileWriter(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"), NewRegistry())
	assert.ErrorContains(t, w.WriteMetrics(), "failed to write metrics textfile")
}
