package regulatory

import (
	"fmt"

	"github.com/eliteGoblin/focusd/wifi_mon/internal/domain"
)

// Registry holds regulatory rules in evaluation order.
// Rules are looked up by id but never reordered: exclusion order is part of
// the policy.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry creates a registry with the built-in rules.
func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, rule := range DefaultExclusions() {
		r.Register(rule)
	}
	r.Register(DefaultInclusion())
	return r
}

// NewRegistryWithRules creates a registry with custom rules (for testing).
func NewRegistryWithRules(rules ...Rule) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Register adds a rule. A rule with an existing id replaces it in place.
func (r *Registry) Register(rule Rule) {
	if i, ok := r.index[rule.ID()]; ok {
		r.rules[i] = rule
		return
	}
	r.index[rule.ID()] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// Get returns a rule by id.
func (r *Registry) Get(id string) (Rule, bool) {
	i, ok := r.index[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// GetAll returns all rules in evaluation order.
func (r *Registry) GetAll() []Rule {
	result := make([]Rule, len(r.rules))
	copy(result, r.rules)
	return result
}

// List returns all rule ids in evaluation order.
func (r *Registry) List() []string {
	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Engine builds a channel engine from the registered rules.
func (r *Registry) Engine() *Country5GHz {
	var exclusions, inclusions []Rule
	for _, rule := range r.rules {
		switch rule.Kind() {
		case domain.RuleExclude:
			exclusions = append(exclusions, rule)
		case domain.RuleInclude:
			inclusions = append(inclusions, rule)
		}
	}
	return NewCountry5GHzWithRules(exclusions, inclusions...)
}

// RegistryRuleStore adapts Registry to implement domain.ChannelRuleStore.
type RegistryRuleStore struct {
	registry *Registry
}

// NewRuleStore creates a ChannelRuleStore backed by the given Registry.
func NewRuleStore(registry *Registry) domain.ChannelRuleStore {
	return &RegistryRuleStore{registry: registry}
}

func (s *RegistryRuleStore) GetAll() []domain.RuleInfo {
	rules := s.registry.GetAll()
	result := make([]domain.RuleInfo, len(rules))
	for i, rule := range rules {
		result[i] = rule.Info()
	}
	return result
}

func (s *RegistryRuleStore) GetByID(id string) (*domain.RuleInfo, error) {
	rule, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	info := rule.Info()
	return &info, nil
}

func (s *RegistryRuleStore) List() []string {
	return s.registry.List()
}

// Ensure RegistryRuleStore implements domain.ChannelRuleStore.
var _ domain.ChannelRuleStore = (*RegistryRuleStore)(nil)
