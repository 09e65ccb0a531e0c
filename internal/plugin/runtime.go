package plugin

import (
	"fmt"

	"github.com/dshills/windlass/internal/configtree"
)

// Plugin is one legacy plugin: an opaque handler plus an optional
// static config fragment merged before theme resolution.
type Plugin struct {
	// Name identifies the plugin in errors. Optional; unnamed plugins
	// report by position.
	Name string

	// Handler is the plugin function. Invoked once per compile with
	// the capability object.
	Handler func(api API) error

	// Config is the static config fragment, if the plugin declares
	// one. Merged by the pipeline before resolution.
	Config *configtree.Map
}

// StaticConfigs returns the static fragments of plugins that declare
// one, in declaration order.
func StaticConfigs(plugins []Plugin) []*configtree.Map {
	var out []*configtree.Map
	for _, p := range plugins {
		if p.Config != nil {
			out = append(out, p.Config)
		}
	}
	return out
}

// Run executes plugin handlers in declaration order against env.
//
// Each handler gets its own capability object bound to the shared
// registries, so a plugin observes contributions from earlier plugins
// but not later ones. A handler error or panic aborts the run; the
// registries are left as-is for the caller to discard.
func Run(plugins []Plugin, env *Env) error {
	for i, p := range plugins {
		if p.Handler == nil {
			continue
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if err := invoke(p.Handler, &api{env: env, name: name}); err != nil {
			return &Error{Plugin: name, Err: err}
		}
	}
	return nil
}

// invoke calls a handler with panic recovery, so a misbehaving plugin
// surfaces as an error instead of taking down the compile.
func invoke(handler func(API) error, a *api) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("panic: %v", v)
			}
		}
	}()
	return handler(a)
}
