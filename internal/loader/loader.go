package loader

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Result is one loaded config module.
type Result struct {
	// Value is the module's produced value. For config modules this is
	// a *configtree.Map; a Lua plugin module may instead produce a
	// plugin.Plugin.
	Value any

	// Base is the directory the module was loaded from, used to
	// resolve its relative refs and content globs.
	Base string
}

// Loader resolves a module reference relative to a base directory.
type Loader interface {
	Load(ref, base string) (*Result, error)
}

// Dispatch routes refs to a format loader by file extension.
type Dispatch struct {
	lua  *LuaLoader
	json *JSONLoader
	log  zerolog.Logger
}

// NewDispatch builds the standard file loader.
func NewDispatch(log zerolog.Logger) *Dispatch {
	return &Dispatch{
		lua:  NewLuaLoader(),
		json: NewJSONLoader(),
		log:  log,
	}
}

func (d *Dispatch) Load(ref, base string) (*Result, error) {
	path := resolveRef(ref, base)
	d.log.Debug().Str("ref", ref).Str("path", path).Msg("loading config module")

	var (
		res *Result
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		res, err = d.lua.Load(path)
	case ".json":
		res, err = d.json.Load(path)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		d.log.Error().Str("ref", ref).Err(err).Msg("config module failed to load")
		return nil, &LoadError{Ref: ref, Err: err}
	}
	return res, nil
}

// resolveRef joins a relative ref onto its base directory. Absolute
// refs pass through.
func resolveRef(ref, base string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(base, ref)
}

// Cached decorates a loader so each distinct module loads exactly
// once. Executable configs may have side effects; caching keeps a
// module referenced from several presets from running repeatedly.
type Cached struct {
	inner Loader

	mu      sync.Mutex
	results map[string]*cachedResult
}

type cachedResult struct {
	res *Result
	err error
}

// NewCached wraps a loader with per-path memoization.
func NewCached(inner Loader) *Cached {
	return &Cached{inner: inner, results: make(map[string]*cachedResult)}
}

func (c *Cached) Load(ref, base string) (*Result, error) {
	key := resolveRef(ref, base)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.results[key]; ok {
		return cached.res, cached.err
	}
	res, err := c.inner.Load(ref, base)
	c.results[key] = &cachedResult{res: res, err: err}
	return res, err
}
