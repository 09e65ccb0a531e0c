package plugin

import (
	"github.com/dshills/windlass/internal/configtree"
	"github.com/dshills/windlass/internal/theme"
)

// Utility is a static utility registration: one class name bound to a
// declaration block.
type Utility struct {
	// Name is the utility class name, without leading dot.
	Name string

	// Declarations maps CSS properties to values, in order.
	Declarations *configtree.Map

	// Source records where the registration came from.
	Source theme.Source
}

// Matcher is a dynamic utility registration: a name prefix bound to a
// generator invoked per matched candidate value.
type Matcher struct {
	// Name is the utility name prefix, e.g. "tab" for "tab-4".
	Name string

	// Generate produces the declaration block for a candidate value.
	Generate Generator

	// Values maps named candidates to concrete values.
	Values *configtree.Map

	// Type hints the candidate value kind for the host.
	Type string

	// Source records where the registration came from.
	Source theme.Source
}

// Apply resolves a candidate through the value mapping and invokes the
// generator. A named candidate uses its mapped value; anything else
// passes through raw.
func (m *Matcher) Apply(candidate string) *configtree.Map {
	value := candidate
	if m.Values != nil {
		if mapped, ok := m.Values.Get(candidate); ok {
			if s, isStr := configtree.Scalar(mapped).(string); isStr {
				value = s
			}
		}
	}
	return m.Generate(value)
}

// UtilityRegistry collects utility registrations for one compile.
type UtilityRegistry struct {
	staticNames  []string
	static       map[string]*Utility
	matcherNames []string
	matchers     map[string]*Matcher
}

// NewUtilityRegistry creates an empty registry.
func NewUtilityRegistry() *UtilityRegistry {
	return &UtilityRegistry{
		static:   make(map[string]*Utility),
		matchers: make(map[string]*Matcher),
	}
}

// Add registers a static utility. A same-name registration replaces an
// earlier one only from an equal-or-higher source; native CSS
// registrations are never replaced.
func (r *UtilityRegistry) Add(u *Utility) bool {
	if u == nil || u.Name == "" || u.Declarations == nil {
		return false
	}
	existing, ok := r.static[u.Name]
	if !ok {
		r.staticNames = append(r.staticNames, u.Name)
		r.static[u.Name] = u
		return true
	}
	if u.Source < existing.Source {
		return false
	}
	r.static[u.Name] = u
	return true
}

// AddMatcher registers a dynamic utility under the same precedence
// rules as Add.
func (r *UtilityRegistry) AddMatcher(m *Matcher) bool {
	if m == nil || m.Name == "" || m.Generate == nil {
		return false
	}
	existing, ok := r.matchers[m.Name]
	if !ok {
		r.matcherNames = append(r.matcherNames, m.Name)
		r.matchers[m.Name] = m
		return true
	}
	if m.Source < existing.Source {
		return false
	}
	r.matchers[m.Name] = m
	return true
}

// Get returns the static utility registered under name.
func (r *UtilityRegistry) Get(name string) (*Utility, bool) {
	u, ok := r.static[name]
	return u, ok
}

// GetMatcher returns the dynamic utility registered under name.
func (r *UtilityRegistry) GetMatcher(name string) (*Matcher, bool) {
	m, ok := r.matchers[name]
	return m, ok
}

// Names returns static utility names in registration order.
func (r *UtilityRegistry) Names() []string {
	out := make([]string, len(r.staticNames))
	copy(out, r.staticNames)
	return out
}

// MatcherNames returns dynamic utility names in registration order.
func (r *UtilityRegistry) MatcherNames() []string {
	out := make([]string, len(r.matcherNames))
	copy(out, r.matcherNames)
	return out
}

// Len returns the total number of registrations.
func (r *UtilityRegistry) Len() int {
	return len(r.staticNames) + len(r.matcherNames)
}
