package domain

import "math"

// WiFiWidth is the declared channel bandwidth of a detected network.
type WiFiWidth int

const (
	Width20 WiFiWidth = iota
	Width40
	Width80
	Width160
	Width80Plus80
	WidthUnknown
)

var widthNames = map[WiFiWidth]string{
	Width20:       "20MHz",
	Width40:       "40MHz",
	Width80:       "80MHz",
	Width160:      "160MHz",
	Width80Plus80: "80+80MHz",
	WidthUnknown:  "unknown",
}

// WiFiWidthFromCode maps a platform channel-width code (0..4) to a WiFiWidth.
func WiFiWidthFromCode(code int) WiFiWidth {
	if code < int(Width20) || code > int(Width80Plus80) {
		return WidthUnknown
	}
	return WiFiWidth(code)
}

func (w WiFiWidth) String() string {
	if name, ok := widthNames[w]; ok {
		return name
	}
	return widthNames[WidthUnknown]
}

// MarshalText renders the width by name in JSON and YAML output.
func (w WiFiWidth) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// MHz returns the width of one segment, or 0 when unknown.
func (w WiFiWidth) MHz() int {
	switch w {
	case Width20:
		return 20
	case Width40:
		return 40
	case Width80, Width80Plus80:
		return 80
	case Width160:
		return 160
	default:
		return 0
	}
}

// CalculateCenter derives the display center frequency of the primary
// segment. A missing declared center falls back to the primary frequency.
func (w WiFiWidth) CalculateCenter(primary, center0 int) int {
	switch w {
	case Width40, Width80, Width160, Width80Plus80:
		if center0 > 0 {
			return center0
		}
		return primary
	default:
		return primary
	}
}

// CalculateSecondaryCenter returns the center of the second 80MHz segment.
// Only 80+80 has one.
func (w WiFiWidth) CalculateSecondaryCenter(center1 int) int {
	if w != Width80Plus80 || center1 <= 0 {
		return 0
	}
	return center1
}

// WiFiStandard is the protocol generation of a detected network.
type WiFiStandard int

const (
	StandardUnknown WiFiStandard = 0
	StandardLegacy  WiFiStandard = 1
	StandardN       WiFiStandard = 4
	StandardAC      WiFiStandard = 5
	StandardAX      WiFiStandard = 6
	StandardAD      WiFiStandard = 7
	StandardBE      WiFiStandard = 8
)

var standardNames = map[WiFiStandard]string{
	StandardUnknown: "unknown",
	StandardLegacy:  "legacy",
	StandardN:       "802.11n",
	StandardAC:      "802.11ac",
	StandardAX:      "802.11ax",
	StandardAD:      "802.11ad",
	StandardBE:      "802.11be",
}

// WiFiStandardFromID maps a platform standard id; unknown ids map to
// StandardUnknown.
func WiFiStandardFromID(id int) WiFiStandard {
	s := WiFiStandard(id)
	if _, ok := standardNames[s]; !ok {
		return StandardUnknown
	}
	return s
}

func (s WiFiStandard) String() string {
	if name, ok := standardNames[s]; ok {
		return name
	}
	return standardNames[StandardUnknown]
}

// MarshalText renders the standard by name in JSON and YAML output.
func (s WiFiStandard) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WiFiSignal describes the radio side of one detected network.
type WiFiSignal struct {
	PrimaryFrequency         int          `json:"primary_frequency" yaml:"primary_frequency"`
	CenterFrequency          int          `json:"center_frequency" yaml:"center_frequency"`
	SecondaryCenterFrequency int          `json:"secondary_center_frequency,omitempty" yaml:"secondary_center_frequency,omitempty"`
	Width                    WiFiWidth    `json:"width" yaml:"width"`
	Level                    int          `json:"level" yaml:"level"`
	Is80211mc                bool         `json:"is80211mc" yaml:"is80211mc"`
	Standard                 WiFiStandard `json:"standard" yaml:"standard"`
	Timestamp                int64        `json:"timestamp" yaml:"timestamp"`
}

// spanHalf is half the occupied bandwidth; unknown widths occupy 20MHz.
func (s WiFiSignal) spanHalf() int {
	mhz := s.Width.MHz()
	if mhz == 0 {
		mhz = 20
	}
	return mhz / 2
}

// FrequencyStart is the lower edge of the primary segment.
func (s WiFiSignal) FrequencyStart() int {
	return s.CenterFrequency - s.spanHalf()
}

// FrequencyEnd is the upper edge of the primary segment.
func (s WiFiSignal) FrequencyEnd() int {
	return s.CenterFrequency + s.spanHalf()
}

func (s WiFiSignal) PrimaryChannel() Channel {
	return FrequencyToChannel(s.PrimaryFrequency)
}

func (s WiFiSignal) CenterChannel() Channel {
	return FrequencyToChannel(s.CenterFrequency)
}

func (s WiFiSignal) Band() Band {
	return FrequencyBand(s.PrimaryFrequency)
}

// Strength buckets the level into 0..4 the way the platform signal meter does.
func (s WiFiSignal) Strength() int {
	const (
		minRSSI = -100
		maxRSSI = -55
		levels  = 5
	)
	switch {
	case s.Level <= minRSSI:
		return 0
	case s.Level >= maxRSSI:
		return levels - 1
	default:
		return (s.Level - minRSSI) * (levels - 1) / (maxRSSI - minRSSI)
	}
}

// Distance estimates the range in metres using free-space path loss.
func (s WiFiSignal) Distance() float64 {
	if s.PrimaryFrequency <= 0 {
		return 0
	}
	const fsplMHzMetres = 27.55
	exp := (fsplMHzMetres - 20*math.Log10(float64(s.PrimaryFrequency)) + math.Abs(float64(s.Level))) / 20.0
	return math.Pow(10.0, exp)
}

// Band is a Wi-Fi frequency band.
type Band string

const (
	Band2GHz    Band = "2.4GHz"
	Band5GHz    Band = "5GHz"
	Band6GHz    Band = "6GHz"
	BandUnknown Band = "unknown"
)

// FrequencyBand classifies a frequency in MHz.
func FrequencyBand(mhz int) Band {
	switch {
	case mhz >= 2400 && mhz <= 2500:
		return Band2GHz
	case mhz >= 4900 && mhz <= 5900:
		return Band5GHz
	case mhz >= 5925 && mhz <= 7125:
		return Band6GHz
	default:
		return BandUnknown
	}
}

// FrequencyToChannel converts a center frequency to its channel number, or 0
// when the frequency is outside every band.
func FrequencyToChannel(mhz int) Channel {
	switch {
	case mhz == 2484:
		return 14
	case mhz >= 2412 && mhz <= 2472:
		return Channel((mhz - 2407) / 5)
	case mhz >= 4910 && mhz <= 5895:
		return Channel((mhz - 5000) / 5)
	case mhz == 5935:
		return 2
	case mhz > 5950 && mhz <= 7125:
		return Channel((mhz - 5950) / 5)
	default:
		return 0
	}
}

// ChannelToFrequency5GHz returns the center frequency of a 5GHz channel.
func ChannelToFrequency5GHz(ch Channel) int {
	return 5000 + 5*int(ch)
}
