package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

const yamlSnapshot = `
country: de
interface: wlan0
api_level: 31
scans:
  - ssid: HomeNet
    bssid: "aa:bb:cc:dd:ee:ff"
    capabilities: "[WPA2-PSK-CCMP][ESS]"
    frequency: 5180
    center_freq0: 5210
    channel_width: 2
    level: -48
    wifi_standard: 5
    timestamp: 1000
  - frequency: 2412
    channel_width: 0
    level: -77
wifi_info:
  ssid: '"HomeNet"'
  bssid: "aa:bb:cc:dd:ee:ff"
  network_id: 4
  link_speed: 866
dhcp_info:
  ip_address: 3232235777
  gateway: 3232235521
`

const jsonSnapshot = `{
  "scans": [
    {"ssid": "Office", "bssid": "01:02:03:04:05:06", "frequency": 5745, "channel_width": 1, "center_freq0": 5755, "level": -60}
  ],
  "wifi_info": {"network_id": -1, "link_speed": 0}
}`

func TestDecodeSnapshot_YAML(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(yamlSnapshot), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "de", snap.Country)
	assert.Equal(t, "wlan0", snap.Interface)
	assert.Equal(t, 31, snap.APILevel)
	require.Len(t, snap.Scans, 2)

	first := snap.Scans[0]
	assert.Equal(t, []byte("HomeNet"), first.SSID)
	require.NotNil(t, first.BSSID)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", *first.BSSID)
	assert.Equal(t, 5210, first.CenterFreq0)
	assert.Equal(t, 5, first.WiFiStandard)

	second := snap.Scans[1]
	assert.Nil(t, second.SSID)
	assert.Nil(t, second.BSSID)
	assert.Nil(t, second.Capabilities)

	require.NotNil(t, snap.WifiInfo)
	assert.Equal(t, `"HomeNet"`, *snap.WifiInfo.SSID)
	require.NotNil(t, snap.DhcpInfo)
	assert.Equal(t, uint32(3232235777), snap.DhcpInfo.IPAddress)
}

func TestDecodeSnapshot_JSON(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(jsonSnapshot), FormatJSON)
	require.NoError(t, err)

	require.Len(t, snap.Scans, 1)
	assert.Equal(t, []byte("Office"), snap.Scans[0].SSID)
	assert.Equal(t, 1, snap.Scans[0].ChannelWidth)
	assert.Equal(t, domain.NotAssociated, snap.WifiInfo.NetworkID)
	assert.Nil(t, snap.DhcpInfo)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	_, err := DecodeSnapshot([]byte("{"), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte("scans: 5"), FormatYAML)
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte("{}"), "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeSnapshot_RoundTrip(t *testing.T) {
	original, err := DecodeSnapshot([]byte(yamlSnapshot), FormatYAML)
	require.NoError(t, err)

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			data, err := EncodeSnapshot(original, format)
			require.NoError(t, err)

			decoded, err := DecodeSnapshot(data, format)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("scan.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("SCAN.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("scan.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("scan.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("scan"))
}

func TestFileSnapshotSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonSnapshot), 0600))

	source := NewFileSnapshotSource(path)
	assert.Equal(t, path, source.Path())

	snap, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Scans, 1)

	// the file is re-read on every load
	require.NoError(t, os.WriteFile(path, []byte(`{"scans": []}`), 0600))
	snap, err = source.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Scans)
}

func TestFileSnapshotSource_Errors(t *testing.T) {
	source := NewFileSnapshotSource(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := source.Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
