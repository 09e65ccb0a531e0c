package compat

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/windlass/internal/configtree"
	"github.com/dshills/windlass/internal/loader"
	"github.com/dshills/windlass/internal/merger"
	"github.com/dshills/windlass/internal/plugin"
	"github.com/dshills/windlass/internal/theme"
	"github.com/dshills/windlass/internal/variant"
)

// ErrNoLoader is returned when a config references external modules
// but no loader was provided.
var ErrNoLoader = errors.New("config references external modules but no loader is configured")

// Options configures one compile.
type Options struct {
	// ConfigRef is the legacy config module to load. Empty means the
	// inline Config (or no legacy config at all) is used.
	ConfigRef string

	// Base is the directory ConfigRef and relative content globs
	// resolve against.
	Base string

	// Config is an inline legacy config tree, used when ConfigRef is
	// empty.
	Config *configtree.Map

	// Loader resolves ConfigRef and any preset or plugin refs. Nil is
	// allowed for fully inline configs.
	Loader loader.Loader

	// Baseline is the starting namespace. Nil uses the built-in
	// default theme.
	Baseline *theme.Namespace

	// CSSTheme holds native theme declarations, applied after the
	// legacy config at the highest precedence.
	CSSTheme *configtree.Map

	// CSSVariants holds natively declared variants.
	CSSVariants []*variant.Definition

	// Log receives per-stage progress. The zero value discards it.
	Log zerolog.Logger
}

// Output is the result of one compile.
type Output struct {
	// Theme is the fully resolved namespace.
	Theme *theme.Namespace

	// Declarations are the emitted custom properties: overridden
	// entries only, in namespace order.
	Declarations []theme.Declaration

	// Utilities holds plugin-registered static and dynamic utilities.
	Utilities *plugin.UtilityRegistry

	// Variants holds the effective variant set, dark mode included.
	Variants *variant.Registry

	// Breakpoints are the effective screens, config overrides
	// included, for candidate and variant generation.
	Breakpoints *configtree.Map

	// Content lists the file discovery globs from the merged config.
	Content []merger.Glob

	// Prefix is the legacy utility class prefix.
	Prefix string

	// Important reports whether legacy utilities emit with !important.
	Important bool
}

// Compile runs the full legacy compatibility pipeline.
func Compile(opts Options) (*Output, error) {
	cfg, base, err := rootConfig(opts)
	if err != nil {
		return nil, err
	}

	cfg, err = resolveRefs(cfg, base, opts.Loader)
	if err != nil {
		return nil, err
	}

	merged := merger.ApplyPresets(cfg)
	plugins := pluginList(merged)

	// Static plugin fragments sit below every explicitly written
	// config layer: a preset or config value on the same key wins.
	effective := merged
	if fragments := plugin.StaticConfigs(plugins); len(fragments) > 0 {
		static := configtree.NewMap()
		for _, frag := range fragments {
			static = merger.MergeConfig(static, frag)
		}
		effective = merger.MergeConfig(static, merged)
	}

	n := merger.Normalize(effective, base)
	opts.Log.Debug().
		Int("plugins", len(plugins)).
		Int("content", len(n.Content)).
		Msg("config normalized")

	ns := opts.Baseline
	if ns == nil {
		ns = theme.DefaultBaseline()
	}
	ns = ns.Clone()

	resolver := theme.NewResolver(ns)
	resolver.ApplyTheme(n.Theme, theme.SourceConfig)
	theme.ApplyDefaultFonts(ns)

	if opts.CSSTheme != nil {
		resolver.ApplyExtend(opts.CSSTheme, theme.SourceCSS)
	}

	variants := variant.NewRegistry()
	for _, def := range opts.CSSVariants {
		variants.Add(def)
	}
	variant.Reconcile(variants, n.DarkMode, theme.SourceConfig)

	env := &plugin.Env{
		Theme:     ns,
		Config:    n.Config,
		Utilities: plugin.NewUtilityRegistry(),
		Variants:  variants,
	}
	if err := plugin.Run(plugins, env); err != nil {
		opts.Log.Error().Err(err).Msg("plugin execution failed")
		return nil, err
	}

	// Plugins may have extended the font families.
	theme.ApplyDefaultFonts(ns)

	return &Output{
		Theme:        ns,
		Declarations: ns.Declarations(),
		Utilities:    env.Utilities,
		Variants:     variants,
		Breakpoints:  ns.Breakpoints(),
		Content:      n.Content,
		Prefix:       n.Prefix,
		Important:    n.Important,
	}, nil
}

// rootConfig produces the starting config tree and its base directory.
func rootConfig(opts Options) (*configtree.Map, string, error) {
	if opts.ConfigRef == "" {
		if opts.Config == nil {
			return nil, opts.Base, nil
		}
		// Ref resolution rewrites the tree in place; keep the caller's
		// copy intact.
		return opts.Config.Clone(), opts.Base, nil
	}
	if opts.Loader == nil {
		return nil, "", ErrNoLoader
	}
	res, err := opts.Loader.Load(opts.ConfigRef, opts.Base)
	if err != nil {
		return nil, "", err
	}
	cfg, ok := res.Value.(*configtree.Map)
	if !ok {
		return nil, "", &loader.LoadError{Ref: opts.ConfigRef, Err: loader.ErrNotConfig}
	}
	// An explicit base wins; otherwise refs and globs resolve relative
	// to the loaded module.
	base := opts.Base
	if base == "" {
		base = res.Base
	}
	return cfg, base, nil
}

// resolveRefs replaces string refs in the presets and plugins
// sequences with their loaded modules, recursively through nested
// presets. A ref that fails to load fails the compile.
func resolveRefs(cfg *configtree.Map, base string, ld loader.Loader) (*configtree.Map, error) {
	if cfg == nil {
		return nil, nil
	}

	if seq, ok := cfg.GetSlice("presets"); ok {
		resolved := make([]any, 0, len(seq))
		for _, entry := range seq {
			switch v := entry.(type) {
			case string:
				if ld == nil {
					return nil, ErrNoLoader
				}
				res, err := ld.Load(v, base)
				if err != nil {
					return nil, err
				}
				pm, ok := res.Value.(*configtree.Map)
				if !ok {
					return nil, &loader.LoadError{Ref: v, Err: loader.ErrNotConfig}
				}
				pm, err = resolveRefs(pm, res.Base, ld)
				if err != nil {
					return nil, err
				}
				resolved = append(resolved, pm)
			case *configtree.Map:
				rm, err := resolveRefs(v, base, ld)
				if err != nil {
					return nil, err
				}
				resolved = append(resolved, rm)
			default:
				resolved = append(resolved, v)
			}
		}
		cfg.Set("presets", resolved)
	}

	if seq, ok := cfg.GetSlice("plugins"); ok {
		resolved := make([]any, 0, len(seq))
		for _, entry := range seq {
			ref, ok := entry.(string)
			if !ok {
				resolved = append(resolved, entry)
				continue
			}
			if ld == nil {
				return nil, ErrNoLoader
			}
			res, err := ld.Load(ref, base)
			if err != nil {
				return nil, err
			}
			p, ok := res.Value.(plugin.Plugin)
			if !ok {
				return nil, &loader.LoadError{Ref: ref, Err: fmt.Errorf("module is not a plugin")}
			}
			resolved = append(resolved, p)
		}
		cfg.Set("plugins", resolved)
	}

	return cfg, nil
}

// pluginList extracts the runnable plugins from a merged config.
// Anything else in the sequence was either resolved earlier or is
// malformed, and malformed entries degrade to absent.
func pluginList(cfg *configtree.Map) []plugin.Plugin {
	seq, ok := cfg.GetSlice("plugins")
	if !ok {
		return nil
	}
	var plugins []plugin.Plugin
	for _, entry := range seq {
		if p, ok := entry.(plugin.Plugin); ok {
			plugins = append(plugins, p)
		}
	}
	return plugins
}
