package analyzer

import (
	"strings"
	"sync"

	"github.com/yaklabco/gobiome/pkg/config"
)

// Registry holds the registered rules in registration order, which is also
// the order rules run in on a node.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule
	byKey  map[string]int // group/name -> index
	byName map[string]int
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]int),
		byName: make(map[string]int),
	}
}

// Register adds a rule to the registry.
// If a rule with the same group and name already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta := rule.Metadata()
	if i, ok := r.byKey[meta.Key()]; ok {
		r.rules[i] = rule
		return
	}
	r.rules = append(r.rules, rule)
	r.byKey[meta.Key()] = len(r.rules) - 1
	if _, taken := r.byName[meta.Name]; !taken {
		r.byName[meta.Name] = len(r.rules) - 1
	}
}

// Get retrieves a rule by "group/name", "lint/group/name" or bare name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimPrefix(strings.TrimPrefix(key, "lint/"), "assist/")
	if i, ok := r.byKey[key]; ok {
		return r.rules[i], true
	}
	if i, ok := r.byName[key]; ok {
		return r.rules[i], true
	}
	return nil, false
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Groups returns the groups that have at least one rule, in first
// registration order.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, rule := range r.rules {
		g := rule.Metadata().Group
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// HasGroup reports whether any rule belongs to group.
func (r *Registry) HasGroup(group string) bool {
	for _, g := range r.Groups() {
		if g == group {
			return true
		}
	}
	return false
}

// RuleSummaries returns the configuration view of the lint rules.
func (r *Registry) RuleSummaries() []config.RuleSummary {
	var out []config.RuleSummary
	for _, rule := range r.Rules() {
		meta := rule.Metadata()
		if meta.Kind != KindLint {
			continue
		}
		out = append(out, config.RuleSummary{
			Group:       meta.Group,
			Name:        meta.Name,
			Description: meta.Description,
			Recommended: meta.Recommended,
			Level:       config.LevelForSeverity(meta.Severity),
			Fixable:     meta.Fix != FixNone,
		})
	}
	return out
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
