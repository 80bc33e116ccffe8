// Package domain contains core Wi-Fi entities and collaborator interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import (
	"fmt"
	"strings"
)

// Channel is a Wi-Fi channel number.
type Channel int

// CountryCode is an ISO-3166 alpha-2 code. Any string is accepted; codes are
// compared after NormalizeCountryCode.
type CountryCode string

// NormalizeCountryCode trims and upper-cases a country code.
func NormalizeCountryCode(code string) CountryCode {
	return CountryCode(strings.ToUpper(strings.TrimSpace(code)))
}

// SubBand names one of the 5GHz channel groups used by regulatory rules.
type SubBand string

const (
	SubBandLow  SubBand = "low"
	SubBandMid  SubBand = "mid"
	SubBandHigh SubBand = "high"
)

// NotAssociated is the network id reported when no network is selected.
const NotAssociated = -1

// ScanResult is one raw radio scan sample as delivered by the scanner.
// Nullable platform fields are pointers; nil means the platform left them out.
// SSID is raw bytes; file codecs carry it as a plain string.
type ScanResult struct {
	SSID               []byte  `json:"-" yaml:"-"`
	BSSID              *string `json:"bssid,omitempty" yaml:"bssid,omitempty"`
	Capabilities       *string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Frequency          int     `json:"frequency" yaml:"frequency"`
	CenterFreq0        int     `json:"center_freq0,omitempty" yaml:"center_freq0,omitempty"`
	CenterFreq1        int     `json:"center_freq1,omitempty" yaml:"center_freq1,omitempty"`
	ChannelWidth       int     `json:"channel_width" yaml:"channel_width"`
	Level              int     `json:"level" yaml:"level"`
	Is80211mcResponder bool    `json:"is80211mc_responder,omitempty" yaml:"is80211mc_responder,omitempty"`
	WiFiStandard       int     `json:"wifi_standard,omitempty" yaml:"wifi_standard,omitempty"`
	Timestamp          int64   `json:"timestamp" yaml:"timestamp"`
}

// CacheResult pairs a scan sample with the rolling average level kept by the
// scan cache.
type CacheResult struct {
	ScanResult ScanResult
	Average    int
}

// WifiInfo is the platform's view of the current association.
type WifiInfo struct {
	SSID      *string `json:"ssid,omitempty" yaml:"ssid,omitempty"`
	BSSID     *string `json:"bssid,omitempty" yaml:"bssid,omitempty"`
	NetworkID int     `json:"network_id" yaml:"network_id"`
	LinkSpeed int     `json:"link_speed" yaml:"link_speed"`
}

// DhcpInfo is the lease snapshot. Addresses are packed with the first octet
// in the most significant byte.
type DhcpInfo struct {
	IPAddress uint32 `json:"ip_address" yaml:"ip_address"`
	Gateway   uint32 `json:"gateway" yaml:"gateway"`
}

// WiFiIdentifier names a network.
type WiFiIdentifier struct {
	SSID  string `json:"ssid" yaml:"ssid"`
	BSSID string `json:"bssid" yaml:"bssid"`
}

// Title renders "SSID (BSSID)", or "*hidden*" for hidden networks.
func (i WiFiIdentifier) Title() string {
	ssid := i.SSID
	if ssid == "" {
		ssid = "*hidden*"
	}
	return fmt.Sprintf("%s (%s)", ssid, i.BSSID)
}

// WiFiDetail is the transformed representation of one scan sample.
type WiFiDetail struct {
	Identifier   WiFiIdentifier `json:"identifier" yaml:"identifier"`
	Capabilities string         `json:"capabilities" yaml:"capabilities"`
	Signal       WiFiSignal     `json:"signal" yaml:"signal"`
}

// WiFiConnection describes the current association.
type WiFiConnection struct {
	Identifier WiFiIdentifier `json:"identifier" yaml:"identifier"`
	IPAddress  string         `json:"ip_address" yaml:"ip_address"`
	LinkSpeed  int            `json:"link_speed" yaml:"link_speed"`
}

// EmptyWiFiConnection is the shared "no association" value.
var EmptyWiFiConnection = WiFiConnection{}

// IsConnected reports whether c describes an actual association.
func (c WiFiConnection) IsConnected() bool {
	return c != EmptyWiFiConnection
}

// WiFiData is one full transformation pass: every detail in scan order plus
// the connection.
type WiFiData struct {
	Details    []WiFiDetail   `json:"details" yaml:"details"`
	Connection WiFiConnection `json:"connection" yaml:"connection"`
}

// ConvertSSID strips one pair of platform-added double quotes.
func ConvertSSID(ssid string) string {
	if len(ssid) >= 2 && strings.HasPrefix(ssid, `"`) && strings.HasSuffix(ssid, `"`) {
		return ssid[1 : len(ssid)-1]
	}
	return ssid
}

// ConvertIPv4Address renders a packed address as dotted decimal.
// Zero means unassigned and renders as "".
func ConvertIPv4Address(addr uint32) string {
	if addr == 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.%d", byte(addr>>24), byte(addr>>16), byte(addr>>8), byte(addr))
}
