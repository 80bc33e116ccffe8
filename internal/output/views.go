package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
	"github.com/eliteGoblin/focusd/wifi_mon/internal/usecase"
)

// Networks renders transformed scan results one row per network.
type Networks []domain.WiFiDetail

func (n Networks) TableHeader() []string {
	return []string{"SSID", "BSSID", "BAND", "CHANNEL", "WIDTH", "PRIMARY", "CENTER", "RANGE", "LEVEL", "STRENGTH", "STANDARD", "DISTANCE"}
}

func (n Networks) TableRows() [][]string {
	rows := make([][]string, len(n))
	for i, d := range n {
		s := d.Signal
		ssid := d.Identifier.SSID
		if ssid == "" {
			ssid = "*hidden*"
		}
		rows[i] = []string{
			ssid,
			d.Identifier.BSSID,
			string(s.Band()),
			fmt.Sprintf("%d(%d)", s.PrimaryChannel(), s.CenterChannel()),
			s.Width.String(),
			strconv.Itoa(s.PrimaryFrequency),
			strconv.Itoa(s.CenterFrequency),
			fmt.Sprintf("%d-%d", s.FrequencyStart(), s.FrequencyEnd()),
			strconv.Itoa(s.Level),
			strings.Repeat("*", s.Strength()+1),
			s.Standard.String(),
			fmt.Sprintf("~%.1fm", s.Distance()),
		}
	}
	return rows
}

// Connection renders the current association as a single row.
type Connection domain.WiFiConnection

func (c Connection) TableHeader() []string {
	return []string{"CONNECTED", "SSID", "BSSID", "IP GATEWAY", "LINK SPEED"}
}

func (c Connection) TableRows() [][]string {
	conn := domain.WiFiConnection(c)
	return [][]string{{
		strconv.FormatBool(conn.IsConnected()),
		conn.Identifier.SSID,
		conn.Identifier.BSSID,
		conn.IPAddress,
		strconv.Itoa(conn.LinkSpeed) + "Mbps",
	}}
}

// ChannelList is the allowed channel set of one country.
type ChannelList struct {
	Country  string           `json:"country" yaml:"country"`
	Channels []domain.Channel `json:"channels" yaml:"channels"`
}

func (c ChannelList) TableHeader() []string {
	return []string{"COUNTRY", "COUNT", "CHANNELS"}
}

func (c ChannelList) TableRows() [][]string {
	chans := make([]string, len(c.Channels))
	for i, ch := range c.Channels {
		chans[i] = strconv.Itoa(int(ch))
	}
	return [][]string{{c.Country, strconv.Itoa(len(c.Channels)), strings.Join(chans, ",")}}
}

// Rules renders regulatory rules in evaluation order.
type Rules []domain.RuleInfo

func (r Rules) TableHeader() []string {
	return []string{"ID", "KIND", "NAME", "COUNTRIES", "CHANNELS"}
}

func (r Rules) TableRows() [][]string {
	rows := make([][]string, len(r))
	for i, info := range r {
		countries := make([]string, len(info.Countries))
		for j, c := range info.Countries {
			countries[j] = string(c)
		}
		chans := make([]string, len(info.Channels))
		for j, ch := range info.Channels {
			chans[j] = strconv.Itoa(int(ch))
		}
		rows[i] = []string{info.ID, string(info.Kind), info.Name, strings.Join(countries, ","), strings.Join(chans, ",")}
	}
	return rows
}

// Ratings renders channel ratings in the given order.
type Ratings []usecase.ChannelRating

func (r Ratings) TableHeader() []string {
	return []string{"CHANNEL", "FREQUENCY", "NETWORKS", "STRONGEST"}
}

func (r Ratings) TableRows() [][]string {
	rows := make([][]string, len(r))
	for i, rating := range r {
		strongest := "-"
		if rating.Count > 0 {
			strongest = strconv.Itoa(rating.MaxLevel)
		}
		rows[i] = []string{
			strconv.Itoa(int(rating.Channel)),
			strconv.Itoa(rating.Frequency),
			strconv.Itoa(rating.Count),
			strongest,
		}
	}
	return rows
}
