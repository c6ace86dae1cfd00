package lint

import (
	"cmp"
	"slices"
	"sync"

	"github.com/leapstack-labs/pinelint/pkg/core"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = NewRegistry()

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Add stores a rule, replacing any rule with the same ID.
func (r *Registry) Add(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// All returns the stored rules in catalogue order. Rules outside the
// catalogue follow, sorted by ID.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	slices.SortFunc(rules, compareRules)
	return rules
}

// Get returns a rule by ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// Len returns the number of stored rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

func compareRules(a, b Rule) int {
	ids := core.RuleIDs()
	ia, ib := slices.Index(ids, a.ID()), slices.Index(ids, b.ID())
	switch {
	case ia >= 0 && ib >= 0:
		return cmp.Compare(ia, ib)
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	default:
		return cmp.Compare(a.ID(), b.ID())
	}
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(def RuleDef) {
	globalRegistry.Add(WrapRuleDef(def))
}

// RegisterRule adds a Rule implementation to the global registry.
func RegisterRule(rule Rule) {
	globalRegistry.Add(rule)
}

// GetAll returns all registered rules in catalogue order.
func GetAll() []Rule {
	return globalRegistry.All()
}

// GetByID returns a rule by its ID.
func GetByID(id string) (Rule, bool) {
	return globalRegistry.Get(id)
}

// GetByGroup returns all rules in a specific group.
func GetByGroup(group string) []Rule {
	var rules []Rule
	for _, rule := range globalRegistry.All() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Count returns the number of registered rules.
func Count() int {
	return globalRegistry.Len()
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]Rule)
}
