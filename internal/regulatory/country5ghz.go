package regulatory

import (
	"slices"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

var (
	lowChannels  = []domain.Channel{36, 40, 44, 48, 52, 56, 60, 64}
	midChannels  = []domain.Channel{100, 104, 108, 112, 116, 120, 124, 128, 132, 136, 140, 144}
	highChannels = []domain.Channel{149, 153, 157, 161, 165}
)

// CountriesETSI lists the countries sharing the ETSI 5GHz profile.
var CountriesETSI = []string{
	"AT", // Austria
	"BE", // Belgium
	"CH", // Switzerland
	"CY", // Cyprus
	"CZ", // Czechia
	"DE", // Germany
	"DK", // Denmark
	"EE", // Estonia
	"ES", // Spain
	"FI", // Finland
	"FR", // France
	"GR", // Greece
	"HU", // Hungary
	"IE", // Ireland
	"IS", // Iceland
	"IT", // Italy
	"LI", // Liechtenstein
	"LT", // Lithuania
	"LU", // Luxembourg
	"LV", // Latvia
	"MT", // Malta
	"NL", // Netherlands
	"NO", // Norway
	"PL", // Poland
	"PT", // Portugal
	"RO", // Romania
	"SE", // Sweden
	"SI", // Slovenia
	"SK", // Slovakia
}

// SubBandChannels returns the channels of a named sub-band.
func SubBandChannels(band domain.SubBand) ([]domain.Channel, bool) {
	switch band {
	case domain.SubBandLow:
		return slices.Clone(lowChannels), true
	case domain.SubBandMid:
		return slices.Clone(midChannels), true
	case domain.SubBandHigh:
		return slices.Clone(highChannels), true
	default:
		return nil, false
	}
}

// DefaultExclusions returns the built-in exclusion rules in evaluation order.
func DefaultExclusions() []Rule {
	return []Rule{
		NewRule("au-ca-weather-radar", "Australia/Canada weather radar", domain.RuleExclude,
			[]string{"AU", "CA"}, []domain.Channel{120, 124, 128}),
		NewRule("ru-mid", "Russia lower mid band", domain.RuleExclude,
			[]string{"RU"}, []domain.Channel{100, 104, 108, 112, 116, 120, 124, 128}),
		NewRule("etsi-144", "ETSI channel 144", domain.RuleExclude,
			CountriesETSI, []domain.Channel{144}),
		NewRule("il-mid-high", "Israel mid and high bands", domain.RuleExclude,
			[]string{"IL"}, concat(midChannels, highChannels)),
		NewRule("cn-kr-mid", "China/Korea mid band", domain.RuleExclude,
			[]string{"CN", "KR"}, midChannels),
		NewRule("jp-tr-za-high", "Japan/Turkey/South Africa high band", domain.RuleExclude,
			[]string{"JP", "TR", "ZA"}, highChannels),
	}
}

// DefaultInclusion returns the built-in inclusion rule.
func DefaultInclusion() Rule {
	return NewRule("etsi-169-173", "ETSI short range devices", domain.RuleInclude,
		CountriesETSI, []domain.Channel{169, 173})
}

// Country5GHz computes allowed 5GHz channels: catalog minus every fired
// exclusion, plus every fired inclusion. Exclusions always apply first.
type Country5GHz struct {
	catalog    []domain.Channel
	exclusions []Rule
	inclusions []Rule
}

// NewCountry5GHz creates the engine with the built-in rules.
func NewCountry5GHz() *Country5GHz {
	return NewCountry5GHzWithRules(DefaultExclusions(), DefaultInclusion())
}

// NewCountry5GHzWithRules creates an engine with custom rules.
func NewCountry5GHzWithRules(exclusions []Rule, inclusions ...Rule) *Country5GHz {
	return &Country5GHz{
		catalog:    sortedUnique(concat(lowChannels, midChannels, highChannels)),
		exclusions: slices.Clone(exclusions),
		inclusions: slices.Clone(inclusions),
	}
}

// FindChannels returns the allowed channels for countryCode in ascending order.
// Unknown codes yield the full catalog.
func (c *Country5GHz) FindChannels(countryCode string) []domain.Channel {
	removed := make(map[domain.Channel]struct{})
	for _, rule := range c.exclusions {
		for _, ch := range rule.Find(countryCode) {
			removed[ch] = struct{}{}
		}
	}

	result := make([]domain.Channel, 0, len(c.catalog)+2)
	for _, ch := range c.catalog {
		if _, ok := removed[ch]; !ok {
			result = append(result, ch)
		}
	}
	for _, rule := range c.inclusions {
		result = append(result, rule.Find(countryCode)...)
	}
	return sortedUnique(result)
}

// Catalog returns the union of the three sub-bands.
func (c *Country5GHz) Catalog() []domain.Channel {
	return slices.Clone(c.catalog)
}

// Exclusions returns the exclusion rules in evaluation order.
func (c *Country5GHz) Exclusions() []Rule {
	return slices.Clone(c.exclusions)
}

// Inclusions returns the inclusion rules in evaluation order.
func (c *Country5GHz) Inclusions() []Rule {
	return slices.Clone(c.inclusions)
}

// Ensure Country5GHz implements domain.ChannelRuleEngine.
var _ domain.ChannelRuleEngine = (*Country5GHz)(nil)

func concat(sets ...[]domain.Channel) []domain.Channel {
	var out []domain.Channel
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
