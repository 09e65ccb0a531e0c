package theme

import (
	"github.com/dshills/windlass/internal/configtree"
)

// Resolver overlays merged legacy theme configuration onto a namespace.
//
// Keys process in declaration order. A function-valued branch is
// evaluated against the namespace as resolved so far, so it may read
// sibling keys declared earlier; keys declared later resolve as not
// found.
type Resolver struct {
	ns *Namespace
}

// NewResolver creates a resolver writing into ns.
func NewResolver(ns *Namespace) *Resolver {
	return &Resolver{ns: ns}
}

// Namespace returns the namespace being resolved.
func (r *Resolver) Namespace() *Namespace {
	return r.ns
}

// ApplyTheme applies a merged "theme" config subtree at src.
//
// The "extend" key merges its entries onto the existing namespace. Any
// other top-level key replaces the corresponding subtree wholesale,
// dropping baseline entries beneath it.
func (r *Resolver) ApplyTheme(cfg *configtree.Map, src Source) {
	if cfg == nil {
		return
	}
	cfg.ForEach(func(key string, val any) bool {
		if key == "extend" {
			extend, ok := val.(*configtree.Map)
			if ok {
				r.ApplyExtend(extend, src)
			}
			// A non-mapping extend is ignored.
			return true
		}
		r.ns.DeleteSubtree(key)
		r.overlay(key, val, src)
		return true
	})
}

// ApplyExtend merges entries onto the existing namespace without
// replacing subtrees.
func (r *Resolver) ApplyExtend(cfg *configtree.Map, src Source) {
	if cfg == nil {
		return
	}
	cfg.ForEach(func(key string, val any) bool {
		r.overlay(key, val, src)
		return true
	})
}

// overlay walks a config value under a dotted key prefix, evaluating
// deferred branches and recognizing tuple shapes, and writes leaves into
// the namespace.
func (r *Resolver) overlay(key string, val any, src Source) {
	switch v := val.(type) {
	case configtree.Deferred:
		result := v(r.ns)
		if result == nil {
			return
		}
		r.overlay(key, result, src)
	case *configtree.Map:
		// A mapping overlaid onto an existing tuple entry overrides
		// companions one by one, keeping the primary value and other
		// companions from lower sources intact.
		if e, ok := r.ns.EntryFor(key); ok {
			if _, isTuple := e.Value.(configtree.Tuple); isTuple {
				v.ForEach(func(ck string, cv any) bool {
					r.ns.SetCompanion(key, ck, cv, src)
					return true
				})
				return
			}
		}
		v.ForEach(func(k string, nested any) bool {
			r.overlay(key+"."+k, nested, src)
			return true
		})
	case []any:
		if t, ok := tupleize(v); ok {
			r.ns.Set(key, t, src)
			return
		}
		r.ns.Set(key, v, src)
	case nil:
		// Malformed leaf. Keep the prior value.
	default:
		r.ns.Set(key, v, src)
	}
}

// tupleize recognizes the legacy two-element tuple shape: a primary
// scalar followed by a mapping of companion values.
func tupleize(seq []any) (configtree.Tuple, bool) {
	if len(seq) != 2 {
		return configtree.Tuple{}, false
	}
	companions, ok := seq[1].(*configtree.Map)
	if !ok {
		return configtree.Tuple{}, false
	}
	if _, isMap := seq[0].(*configtree.Map); isMap {
		return configtree.Tuple{}, false
	}
	return configtree.Tuple{Primary: seq[0], Companions: companions}, true
}
