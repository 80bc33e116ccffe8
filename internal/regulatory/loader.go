package regulatory

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

var (
	ErrUnknownRuleKind = errors.New("unknown rule kind")
	ErrUnknownSubBand  = errors.New("unknown sub-band")
	ErrEmptyRule       = errors.New("rule needs id, countries and channels")
	ErrRuleNotFound    = errors.New("rule not found")
)

// RuleFile is the on-disk format for additional regulatory rules.
type RuleFile struct {
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is one rule entry. Channels and sub-bands are merged.
type RuleConfig struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Countries []string `yaml:"countries"`
	Channels  []int    `yaml:"channels"`
	SubBands  []string `yaml:"sub_bands"`
}

// RuleLoader loads rule files into a Registry.
type RuleLoader struct {
	registry *Registry
	logger   *zap.Logger
}

// NewRuleLoader creates a loader that registers into registry.
func NewRuleLoader(registry *Registry, logger *zap.Logger) *RuleLoader {
	return &RuleLoader{
		registry: registry,
		logger:   logger,
	}
}

// LoadFromYAML reads a rule file and registers every entry.
func (l *RuleLoader) LoadFromYAML(filename string) error {
	l.logger.Info("loading regulatory rules", zap.String("file", filename))

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes parses YAML rule data and registers every entry. Nothing is
// registered when any entry is invalid.
func (l *RuleLoader) LoadFromBytes(data []byte) error {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse rule file: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for _, cfg := range file.Rules {
		rule, err := cfg.toRule()
		if err != nil {
			return fmt.Errorf("rule %q: %w", cfg.ID, err)
		}
		rules = append(rules, rule)
	}

	for _, rule := range rules {
		l.registry.Register(rule)
		l.logger.Debug("registered rule",
			zap.String("id", rule.ID()),
			zap.String("kind", string(rule.Kind())))
	}

	l.logger.Info("regulatory rules loaded", zap.Int("rules", len(rules)))
	return nil
}

func (c RuleConfig) toRule() (Rule, error) {
	kind := domain.RuleKind(c.Kind)
	if kind != domain.RuleExclude && kind != domain.RuleInclude {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleKind, c.Kind)
	}

	channels := make([]domain.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		channels = append(channels, domain.Channel(ch))
	}
	for _, name := range c.SubBands {
		band, ok := SubBandChannels(domain.SubBand(name))
		if !ok {
			return Rule{}, fmt.Errorf("%w: %q", ErrUnknownSubBand, name)
		}
		channels = append(channels, band...)
	}

	if len(c.Countries) == 0 || len(channels) == 0 || c.ID == "" {
		return Rule{}, ErrEmptyRule
	}

	name := c.Name
	if name == "" {
		name = c.ID
	}
	return NewRule(c.ID, name, kind, c.Countries, channels), nil
}
