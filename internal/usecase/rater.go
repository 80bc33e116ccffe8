package usecase

import (
	"slices"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// ChannelRating summarizes how busy one allowed 5GHz channel is.
type ChannelRating struct {
	Channel   domain.Channel `json:"channel" yaml:"channel"`
	Frequency int            `json:"frequency" yaml:"frequency"`
	Count     int            `json:"count" yaml:"count"`
	MaxLevel  int            `json:"max_level" yaml:"max_level"`
}

// ChannelRater rates the channels a country allows against detected networks.
type ChannelRater struct {
	engine domain.ChannelRuleEngine
}

// NewChannelRater creates a rater backed by engine.
func NewChannelRater(engine domain.ChannelRuleEngine) *ChannelRater {
	return &ChannelRater{engine: engine}
}

// Rate returns one rating per allowed channel in ascending channel order.
// A network counts against a channel when its occupied range covers the
// channel's center frequency.
func (r *ChannelRater) Rate(countryCode string, details []domain.WiFiDetail) []ChannelRating {
	allowed := r.engine.FindChannels(countryCode)
	ratings := make([]ChannelRating, len(allowed))
	for i, ch := range allowed {
		freq := domain.ChannelToFrequency5GHz(ch)
		rating := ChannelRating{Channel: ch, Frequency: freq}
		for _, d := range details {
			s := d.Signal
			if s.Band() != domain.Band5GHz {
				continue
			}
			if freq < s.FrequencyStart() || freq > s.FrequencyEnd() {
				continue
			}
			if rating.Count == 0 || s.Level > rating.MaxLevel {
				rating.MaxLevel = s.Level
			}
			rating.Count++
		}
		ratings[i] = rating
	}
	return ratings
}

// BestChannels returns up to limit ratings, least busy first. Ties keep
// ascending channel order. A limit <= 0 returns every channel.
func (r *ChannelRater) BestChannels(countryCode string, details []domain.WiFiDetail, limit int) []ChannelRating {
	ratings := r.Rate(countryCode, details)
	slices.SortStableFunc(ratings, func(a, b ChannelRating) int {
		return a.Count - b.Count
	})
	if limit > 0 && limit < len(ratings) {
		ratings = ratings[:limit]
	}
	return ratings
}
