package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

func TestSnapshotCapability(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name     string
		override *bool
		level    int
		observed int
		want     bool
	}{
		{name: "old platform", level: 29, want: false},
		{name: "new platform", level: MinStandardAPILevel, want: true},
		{name: "unknown level", want: false},
		{name: "observed upgrade", level: 29, observed: 33, want: true},
		{name: "observed zero keeps previous", level: 31, observed: 0, want: true},
		{name: "forced on", override: &yes, level: 21, want: true},
		{name: "forced off", override: &no, level: 34, observed: 34, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSnapshotCapability(tt.override, tt.level)
			c.Observe(&domain.Snapshot{APILevel: tt.observed})
			assert.Equal(t, tt.want, c.StandardReportingAvailable())
		})
	}
}

func TestSnapshotCapability_ObserveNil(t *testing.T) {
	c := NewSnapshotCapability(nil, 30)
	c.Observe(nil)
	assert.True(t, c.StandardReportingAvailable())
}
