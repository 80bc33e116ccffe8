// Package regulatory computes legal 5GHz channel sets from country-scoped rules.
// Each rule pairs a set of countries with a set of channels; rules are static
// configuration evaluated in a fixed order.
package regulatory

import (
	"slices"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// Rule is an immutable (countries, channels) pair. It fires for a country code
// iff the normalized code is one of its countries.
type Rule struct {
	id        string
	name      string
	kind      domain.RuleKind
	countries map[domain.CountryCode]struct{}
	channels  []domain.Channel
}

// NewRule builds a rule. Country codes are normalized; channels are sorted and
// deduplicated.
func NewRule(id, name string, kind domain.RuleKind, countries []string, channels []domain.Channel) Rule {
	set := make(map[domain.CountryCode]struct{}, len(countries))
	for _, c := range countries {
		set[domain.NormalizeCountryCode(c)] = struct{}{}
	}
	return Rule{
		id:        id,
		name:      name,
		kind:      kind,
		countries: set,
		channels:  sortedUnique(channels),
	}
}

func (r Rule) ID() string {
	return r.id
}

func (r Rule) Name() string {
	return r.name
}

func (r Rule) Kind() domain.RuleKind {
	return r.kind
}

// Fires reports whether the rule applies to countryCode.
func (r Rule) Fires(countryCode string) bool {
	_, ok := r.countries[domain.NormalizeCountryCode(countryCode)]
	return ok
}

// Find returns the rule's channels when it fires, nil otherwise.
func (r Rule) Find(countryCode string) []domain.Channel {
	if !r.Fires(countryCode) {
		return nil
	}
	return slices.Clone(r.channels)
}

// Info returns the read-only view used by the rule store.
func (r Rule) Info() domain.RuleInfo {
	countries := make([]domain.CountryCode, 0, len(r.countries))
	for c := range r.countries {
		countries = append(countries, c)
	}
	slices.Sort(countries)
	return domain.RuleInfo{
		ID:        r.id,
		Name:      r.name,
		Kind:      r.kind,
		Countries: countries,
		Channels:  slices.Clone(r.channels),
	}
}

func sortedUnique(channels []domain.Channel) []domain.Channel {
	out := slices.Clone(channels)
	slices.Sort(out)
	return slices.Compact(out)
}
