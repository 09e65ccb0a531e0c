// Package merger folds legacy presets, the config itself, and plugin
// static config fragments into one normalized config tree.
//
// Presets merge depth-first and left-to-right: each preset first
// resolves its own nested presets, then merges over the accumulated
// base, so on a scalar conflict the earliest-declared preset loses. The
// owning config merges last and overrides every preset. Malformed
// entries never fail a merge; the affected leaf keeps its prior value.
package merger

import (
	"github.com/dshills/windlass/internal/configtree"
)

// Recognized top-level config keys. Anything else is tolerated and
// ignored.
const (
	keyPresets   = "presets"
	keyPlugins   = "plugins"
	keyTheme     = "theme"
	keyDarkMode  = "darkMode"
	keyContent   = "content"
	keyPrefix    = "prefix"
	keyImportant = "important"
)

// MergePresets folds a sequence of preset configs left to right. Each
// preset is applied as if it were a config: its own nested presets
// resolve first. Non-mapping entries are skipped.
func MergePresets(presets []any) *configtree.Map {
	base := configtree.NewMap()
	for _, p := range presets {
		pm, ok := p.(*configtree.Map)
		if !ok {
			continue
		}
		base = mergeLayer(base, ApplyPresets(pm))
	}
	return base
}

// ApplyPresets resolves a config's presets depth-first and merges the
// config's own values over them. The returned tree has no "presets"
// key.
func ApplyPresets(cfg *configtree.Map) *configtree.Map {
	if cfg == nil {
		return configtree.NewMap()
	}

	var presets []any
	if seq, ok := cfg.GetSlice(keyPresets); ok {
		presets = seq
	}

	base := MergePresets(presets)
	own := cfg.Clone()
	own.Delete(keyPresets)
	return mergeLayer(base, own)
}

// mergeLayer merges layer over base. Plugin lists concatenate across
// layers, earlier layers first, instead of replacing like other
// sequence values.
func mergeLayer(base, layer *configtree.Map) *configtree.Map {
	var plugins []any
	if seq, ok := base.GetSlice(keyPlugins); ok {
		plugins = append(plugins, seq...)
	}
	if seq, ok := layer.GetSlice(keyPlugins); ok {
		plugins = append(plugins, seq...)
	}
	merged := configtree.Merge(base, layer)
	if len(plugins) > 0 {
		merged.Set(keyPlugins, plugins)
	}
	return merged
}

// MergeConfig merges an extension tree over a base tree. Used both for
// plugin static config fragments and for folding multiple config
// sources.
func MergeConfig(base, extension *configtree.Map) *configtree.Map {
	return configtree.Merge(base, extension)
}

// Normalized is the view of a merged config the pipeline consumes.
type Normalized struct {
	// Config is the fully merged tree.
	Config *configtree.Map

	// Theme is the raw "theme" subtree, nil when absent or malformed.
	Theme *configtree.Map

	// DarkMode is the raw darkMode option, nil when absent.
	DarkMode any

	// Content holds the file-discovery glob descriptors.
	Content []Glob

	// Plugins holds the raw plugin values in declaration order.
	Plugins []any

	// Prefix is the utility class prefix, empty when absent.
	Prefix string

	// Important reports whether utilities emit with !important.
	Important bool
}

// Normalize extracts the recognized top-level keys from a merged
// config. base is the config's resolution base for relative content
// globs. Unrecognized shapes are ignored, never errors.
func Normalize(cfg *configtree.Map, base string) *Normalized {
	n := &Normalized{Config: cfg}
	if cfg == nil {
		n.Config = configtree.NewMap()
		return n
	}

	if th, ok := cfg.GetMap(keyTheme); ok {
		n.Theme = th
	}
	if dm, ok := cfg.Get(keyDarkMode); ok {
		n.DarkMode = dm
	}
	if plugins, ok := cfg.GetSlice(keyPlugins); ok {
		n.Plugins = plugins
	}
	if prefix, ok := cfg.GetString(keyPrefix); ok {
		n.Prefix = prefix
	}
	if imp, ok := cfg.Get(keyImportant); ok {
		if b, isBool := imp.(bool); isBool {
			n.Important = b
		}
	}
	n.Content = ContentGlobs(cfg, base)

	return n
}
