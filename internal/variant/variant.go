// Package variant manages the variant registry: named CSS wrapping
// transforms (media conditions, selector wrappers) applicable to
// utilities.
//
// Registration follows the same source precedence as theme entries: a
// later registration from an equal-or-higher source replaces an earlier
// one, and a native CSS-declared variant is never replaced by a config
// or plugin contribution. Output ordering is controlled by a sort
// weight independent of registration order, so variants like print stay
// last no matter when they were registered.
package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/windlass/internal/theme"
)

// Standard sort weights. Higher weights sort later.
const (
	// WeightDefault is the weight for ordinary variants.
	WeightDefault = 0

	// WeightLast forces a variant to the end of the output order.
	WeightLast = 1000
)

// alwaysLast names variants that sort last regardless of how they were
// registered.
var alwaysLast = map[string]bool{
	"print": true,
}

// Wrapper transforms inner CSS into its wrapped form.
type Wrapper func(inner string) string

// Definition is a registered variant.
type Definition struct {
	// Name is the variant name, e.g. "dark" or "hover".
	Name string

	// Wrap produces the wrapped CSS for a block of inner CSS.
	Wrap Wrapper

	// Weight controls output ordering. Lower sorts earlier.
	Weight int

	// Source records where the variant came from.
	Source theme.Source
}

// SelectorWrapper builds a Wrapper that nests inner CSS under a
// selector or at-rule prelude, e.g. "@media print" or "&:hover".
func SelectorWrapper(prelude string) Wrapper {
	return func(inner string) string {
		return fmt.Sprintf("%s { %s }", prelude, inner)
	}
}

// Registry holds registered variants.
type Registry struct {
	names []string
	defs  map[string]*Definition
}

// NewRegistry creates an empty variant registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Add registers def, replacing an existing variant of the same name
// only when def's source is at least the existing one's. Returns true
// if the registry changed.
func (r *Registry) Add(def *Definition) bool {
	if def == nil || def.Name == "" || def.Wrap == nil {
		return false
	}
	if alwaysLast[def.Name] && def.Weight == WeightDefault {
		// Store an adjusted copy; the caller's definition stays as
		// written.
		adjusted := *def
		adjusted.Weight = WeightLast
		def = &adjusted
	}

	existing, ok := r.defs[def.Name]
	if !ok {
		r.names = append(r.names, def.Name)
		r.defs[def.Name] = def
		return true
	}
	if def.Source < existing.Source {
		return false
	}
	r.defs[def.Name] = def
	return true
}

// Get returns the variant registered under name.
func (r *Registry) Get(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Len returns the number of registered variants.
func (r *Registry) Len() int {
	return len(r.names)
}

// List returns the variants in output order: ascending weight, with
// registration order breaking ties.
func (r *Registry) List() []*Definition {
	out := make([]*Definition, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.defs[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight < out[j].Weight
	})
	return out
}

// Names returns the variant names in output order.
func (r *Registry) Names() []string {
	defs := r.List()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// trimSelector normalizes a caller-supplied selector template.
func trimSelector(s string) string {
	return strings.TrimSpace(s)
}
