package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// ErrInvalidRuleLevel is returned when a rule level string is not recognized.
var ErrInvalidRuleLevel = errors.New("invalid rule level")

// RulePlainConfiguration is the level a rule runs at.
type RulePlainConfiguration string

const (
	RuleOff   RulePlainConfiguration = "off"
	RuleOn    RulePlainConfiguration = "on"
	RuleInfo  RulePlainConfiguration = "info"
	RuleWarn  RulePlainConfiguration = "warn"
	RuleError RulePlainConfiguration = "error"
)

// IsValid reports whether l is a known level.
func (l RulePlainConfiguration) IsValid() bool {
	switch l {
	case RuleOff, RuleOn, RuleInfo, RuleWarn, RuleError:
		return true
	default:
		return false
	}
}

// Severity maps l to a diagnostic severity. "on" keeps the rule default.
// The second result is false when the rule is off.
func (l RulePlainConfiguration) Severity(def diagnostic.Severity) (diagnostic.Severity, bool) {
	switch l {
	case RuleOff:
		return "", false
	case RuleInfo:
		return diagnostic.SeverityInformation, true
	case RuleWarn:
		return diagnostic.SeverityWarning, true
	case RuleError:
		return diagnostic.SeverityError, true
	default:
		return def, true
	}
}

// LevelForSeverity is the inverse of Severity for the reportable levels.
func LevelForSeverity(sev diagnostic.Severity) RulePlainConfiguration {
	switch sev {
	case diagnostic.SeverityError, diagnostic.SeverityFatal:
		return RuleError
	case diagnostic.SeverityWarning:
		return RuleWarn
	default:
		return RuleInfo
	}
}

// FixKind overrides the applicability of a rule's action.
type FixKind string

const (
	FixNone   FixKind = "none"
	FixSafe   FixKind = "safe"
	FixUnsafe FixKind = "unsafe"
)

// RuleConfiguration configures one rule. In JSON it is either a plain level
// string or an object with level, fix and options.
type RuleConfiguration struct {
	Level   RulePlainConfiguration
	Fix     FixKind
	Options map[string]any
}

type ruleConfigurationObject struct {
	Level   RulePlainConfiguration `json:"level"`
	Fix     FixKind                `json:"fix,omitempty"`
	Options map[string]any         `json:"options,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RuleConfiguration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var level RulePlainConfiguration
		if err := json.Unmarshal(data, &level); err != nil {
			return err
		}
		if !level.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidRuleLevel, level)
		}
		*c = RuleConfiguration{Level: level}
		return nil
	}

	var obj ruleConfigurationObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("rule configuration: %w", err)
	}
	if obj.Level == "" {
		obj.Level = RuleOn
	}
	if !obj.Level.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRuleLevel, obj.Level)
	}
	*c = RuleConfiguration(obj)
	return nil
}

// MarshalJSON implements json.Marshaler. A configuration without fix or
// options is written as a plain level string.
func (c RuleConfiguration) MarshalJSON() ([]byte, error) {
	if c.Fix == "" && len(c.Options) == 0 {
		return json.Marshal(c.Level)
	}
	return json.Marshal(ruleConfigurationObject(c))
}

// RuleGroup holds the configuration of one rule group.
type RuleGroup struct {
	Recommended *bool
	All         *bool
	Rules       map[string]RuleConfiguration
}

// IsZero reports whether the group sets nothing.
func (g *RuleGroup) IsZero() bool {
	return g == nil || (g.Recommended == nil && g.All == nil && len(g.Rules) == 0)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *RuleGroup) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := RuleGroup{Rules: make(map[string]RuleConfiguration, len(raw))}
	for key, value := range raw {
		switch key {
		case "recommended":
			if err := json.Unmarshal(value, &out.Recommended); err != nil {
				return fmt.Errorf("recommended: %w", err)
			}
		case "all":
			if err := json.Unmarshal(value, &out.All); err != nil {
				return fmt.Errorf("all: %w", err)
			}
		default:
			var rc RuleConfiguration
			if err := json.Unmarshal(value, &rc); err != nil {
				return fmt.Errorf("rule %s: %w", key, err)
			}
			out.Rules[key] = rc
		}
	}
	*g = out
	return nil
}

// MarshalJSON implements json.Marshaler with flags first and rules sorted.
func (g RuleGroup) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.optional("recommended", g.Recommended)
	w.optional("all", g.All)
	for _, name := range slices.Sorted(maps.Keys(g.Rules)) {
		if err := w.field(name, g.Rules[name]); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// Rules is the linter.rules section.
type Rules struct {
	Recommended *bool
	All         *bool
	Groups      map[string]*RuleGroup
}

// IsZero reports whether the section sets nothing.
func (r Rules) IsZero() bool {
	return r.Recommended == nil && r.All == nil && len(r.Groups) == 0
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rules) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Rules{Groups: make(map[string]*RuleGroup, len(raw))}
	for key, value := range raw {
		switch key {
		case "recommended":
			if err := json.Unmarshal(value, &out.Recommended); err != nil {
				return fmt.Errorf("recommended: %w", err)
			}
		case "all":
			if err := json.Unmarshal(value, &out.All); err != nil {
				return fmt.Errorf("all: %w", err)
			}
		default:
			group := &RuleGroup{}
			if err := json.Unmarshal(value, group); err != nil {
				return fmt.Errorf("group %s: %w", key, err)
			}
			out.Groups[key] = group
		}
	}
	*r = out
	return nil
}

// MarshalJSON implements json.Marshaler with flags first and groups sorted.
func (r Rules) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.optional("recommended", r.Recommended)
	w.optional("all", r.All)
	for _, name := range slices.Sorted(maps.Keys(r.Groups)) {
		if r.Groups[name].IsZero() {
			continue
		}
		if err := w.field(name, r.Groups[name]); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// Group returns the named group, or nil.
func (r *Rules) Group(name string) *RuleGroup {
	return r.Groups[name]
}

// EnsureGroup returns the named group, creating it when absent.
func (r *Rules) EnsureGroup(name string) *RuleGroup {
	if r.Groups == nil {
		r.Groups = make(map[string]*RuleGroup)
	}
	g, ok := r.Groups[name]
	if !ok {
		g = &RuleGroup{}
		r.Groups[name] = g
	}
	if g.Rules == nil {
		g.Rules = make(map[string]RuleConfiguration)
	}
	return g
}

// Rule returns the configuration of group/name.
func (r *Rules) Rule(group, name string) (RuleConfiguration, bool) {
	g := r.Groups[group]
	if g == nil {
		return RuleConfiguration{}, false
	}
	rc, ok := g.Rules[name]
	return rc, ok
}

// SetLevel writes the level of group/name, creating the group and the rule
// entry as needed and keeping any existing options.
func (r *Rules) SetLevel(group, name string, level RulePlainConfiguration) {
	g := r.EnsureGroup(group)
	rc := g.Rules[name]
	rc.Level = level
	g.Rules[name] = rc
}

// Merge overlays the values set in other onto r.
func (r *Rules) Merge(other Rules) {
	if other.Recommended != nil {
		r.Recommended = other.Recommended
	}
	if other.All != nil {
		r.All = other.All
	}
	for name, og := range other.Groups {
		if og == nil {
			continue
		}
		g := r.EnsureGroup(name)
		if og.Recommended != nil {
			g.Recommended = og.Recommended
		}
		if og.All != nil {
			g.All = og.All
		}
		maps.Copy(g.Rules, og.Rules)
	}
}

// Clone returns a deep copy of the group map so overrides do not alias.
func (r Rules) Clone() Rules {
	out := Rules{Recommended: r.Recommended, All: r.All}
	if r.Groups == nil {
		return out
	}
	out.Groups = make(map[string]*RuleGroup, len(r.Groups))
	for name, g := range r.Groups {
		if g == nil {
			continue
		}
		out.Groups[name] = &RuleGroup{
			Recommended: g.Recommended,
			All:         g.All,
			Rules:       maps.Clone(g.Rules),
		}
	}
	return out
}

// objectWriter writes a JSON object with fields in call order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *objectWriter) field(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
	return nil
}

func (w *objectWriter) optional(key string, value *bool) {
	if value != nil {
		_ = w.field(key, *value)
	}
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}
