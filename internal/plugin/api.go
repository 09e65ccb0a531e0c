package plugin

import (
	"github.com/dshills/windlass/internal/configtree"
	"github.com/dshills/windlass/internal/theme"
	"github.com/dshills/windlass/internal/variant"
)

// Generator maps a matched candidate value to a declaration block.
type Generator func(value string) *configtree.Map

// MatchOptions configures a dynamic utility registration.
type MatchOptions struct {
	// Values maps named candidate values (e.g. "4" or "sm") to the
	// concrete value handed to the generator. Candidates not present
	// pass through raw.
	Values *configtree.Map

	// Type hints the candidate value kind, e.g. "color" or "length".
	// Passed through to the host; not interpreted here.
	Type string
}

// API is the capability object handed to a plugin function. All
// registrations are side effects on the shared registries; the theme
// view is read-only.
type API interface {
	// Theme resolves a dotted theme path against the final namespace,
	// including contributions from earlier-executing plugins. Returns
	// the optional default when the path is missing.
	Theme(path string, defaultValue ...any) any

	// Config resolves a path against the merged legacy config.
	Config(path string, defaultValue ...any) any

	// AddUtilities registers static utilities: class name to
	// declaration block.
	AddUtilities(utilities *configtree.Map)

	// MatchUtilities registers a dynamic utility: a name prefix plus a
	// generator invoked per matched candidate value.
	MatchUtilities(name string, generate Generator, opts *MatchOptions)

	// AddVariant registers a variant. The wrapper may be a selector or
	// at-rule prelude string, a variant.Wrapper function, or the
	// two-element ["variant", selector] array form.
	AddVariant(name string, wrapper any)

	// ExtendTheme merges a theme extension back into the namespace at
	// plugin precedence. Native CSS entries stay untouched.
	ExtendTheme(extension *configtree.Map)
}

// Env is the shared state one compile exposes to plugin execution.
type Env struct {
	// Theme is the resolved namespace.
	Theme *theme.Namespace

	// Config is the fully merged legacy config.
	Config *configtree.Map

	// Utilities receives utility registrations.
	Utilities *UtilityRegistry

	// Variants receives variant registrations.
	Variants *variant.Registry
}

// api is the concrete capability object for one plugin invocation.
type api struct {
	env  *Env
	name string
}

func (a *api) Theme(path string, defaultValue ...any) any {
	if v, ok := a.env.Theme.Lookup(path); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

func (a *api) Config(path string, defaultValue ...any) any {
	if v, ok := configtree.Resolve(a.env.Config, path); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

func (a *api) AddUtilities(utilities *configtree.Map) {
	if utilities == nil {
		return
	}
	utilities.ForEach(func(name string, val any) bool {
		decls, ok := val.(*configtree.Map)
		if !ok {
			// Malformed block. Skip the entry, keep siblings.
			return true
		}
		a.env.Utilities.Add(&Utility{
			Name:         name,
			Declarations: decls.Clone(),
			Source:       theme.SourcePlugin,
		})
		return true
	})
}

func (a *api) MatchUtilities(name string, generate Generator, opts *MatchOptions) {
	if name == "" || generate == nil {
		return
	}
	m := &Matcher{Name: name, Generate: generate, Source: theme.SourcePlugin}
	if opts != nil {
		m.Values = opts.Values.Clone()
		m.Type = opts.Type
	}
	a.env.Utilities.AddMatcher(m)
}

func (a *api) AddVariant(name string, wrapper any) {
	wrap, ok := toWrapper(wrapper)
	if !ok {
		return
	}
	a.env.Variants.Add(&variant.Definition{
		Name:   name,
		Wrap:   wrap,
		Weight: variant.WeightDefault,
		Source: theme.SourcePlugin,
	})
}

func (a *api) ExtendTheme(extension *configtree.Map) {
	if extension == nil {
		return
	}
	theme.NewResolver(a.env.Theme).ApplyExtend(extension, theme.SourcePlugin)
}

// toWrapper converts the accepted wrapper shapes to a variant.Wrapper.
func toWrapper(wrapper any) (variant.Wrapper, bool) {
	switch w := wrapper.(type) {
	case string:
		if w == "" {
			return nil, false
		}
		return variant.SelectorWrapper(w), true
	case variant.Wrapper:
		return w, true
	case func(string) string:
		return w, true
	case []any:
		if len(w) != 2 {
			return nil, false
		}
		strategy, _ := w[0].(string)
		selector, ok := w[1].(string)
		if strategy != "variant" || !ok || selector == "" {
			return nil, false
		}
		return variant.SelectorWrapper(selector), true
	default:
		return nil, false
	}
}
