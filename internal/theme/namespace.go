package theme

import (
	"strings"

	"github.com/dshills/windlass/internal/configtree"
)

// Source indicates where a theme entry came from.
// Higher values override lower values.
type Source uint8

const (
	// SourceBaseline is the engine's built-in default baseline.
	SourceBaseline Source = iota

	// SourceConfig is the legacy config, with its presets folded in.
	SourceConfig

	// SourcePlugin is a plugin execution-phase contribution.
	SourcePlugin

	// SourceCSS is a native CSS-declared entry. Never overridden.
	SourceCSS
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBaseline:
		return "baseline"
	case SourceConfig:
		return "config"
	case SourcePlugin:
		return "plugin"
	case SourceCSS:
		return "css"
	default:
		return "unknown"
	}
}

// Entry is a single resolved theme value with provenance.
type Entry struct {
	// Key is the dotted theme key, e.g. "fontSize.base".
	Key string

	// Value is a scalar, sequence, or configtree.Tuple.
	Value any

	// Source is the highest-precedence origin that set this entry.
	Source Source

	// baseline remembers the built-in value, if any, for emission
	// suppression.
	baseline any
}

// Default reports whether the entry is unchanged from the baseline.
func (e *Entry) Default() bool {
	return e.Source == SourceBaseline
}

// Namespace is the ordered set of resolved theme entries.
type Namespace struct {
	keys    []string
	entries map[string]*Entry
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{entries: make(map[string]*Entry)}
}

// Set stores value under key if src is at least the current entry's
// source. Setting a value equivalent to the baseline value keeps the
// entry at baseline provenance, so untouched defaults are never
// re-emitted. Returns true if the entry changed.
func (n *Namespace) Set(key string, value any, src Source) bool {
	existing, ok := n.entries[key]
	if !ok {
		e := &Entry{Key: key, Value: configtree.CloneValue(value), Source: src}
		if src == SourceBaseline {
			e.baseline = e.Value
		}
		n.keys = append(n.keys, key)
		n.entries[key] = e
		return true
	}

	if src < existing.Source {
		return false
	}

	if src > SourceBaseline && Equivalent(value, existing.baseline) {
		// Same as the default. Revert to baseline provenance, even over
		// an earlier override.
		changed := existing.Source != SourceBaseline
		existing.Value = existing.baseline
		existing.Source = SourceBaseline
		return changed
	}

	existing.Value = configtree.CloneValue(value)
	existing.Source = src
	if src == SourceBaseline {
		existing.baseline = existing.Value
	}
	return true
}

// SetCompanion overrides a single companion of a tuple entry, leaving
// the primary value (and other companions) from lower sources intact.
// A scalar entry is promoted to a tuple. Ignored when src is below the
// entry's source and the companion is already set by that source.
func (n *Namespace) SetCompanion(key, companion string, value any, src Source) bool {
	existing, ok := n.entries[key]
	if !ok {
		t := Tuple(nil, configtree.NewMap().Set(companion, value))
		return n.Set(key, t, src)
	}
	if src < existing.Source {
		return false
	}

	var t configtree.Tuple
	switch v := existing.Value.(type) {
	case configtree.Tuple:
		t = v.Clone()
	default:
		t = configtree.Tuple{Primary: configtree.CloneValue(v)}
	}
	if t.Companions == nil {
		t.Companions = configtree.NewMap()
	}
	t.Companions.Set(companion, configtree.CloneValue(value))

	existing.Value = t
	if src > existing.Source {
		existing.Source = src
	}
	return true
}

// EntryFor returns the entry for a dotted key.
func (n *Namespace) EntryFor(key string) (*Entry, bool) {
	e, ok := n.entries[key]
	return e, ok
}

// Has reports whether an entry exists for key.
func (n *Namespace) Has(key string) bool {
	_, ok := n.entries[key]
	return ok
}

// Len returns the number of entries.
func (n *Namespace) Len() int {
	return len(n.keys)
}

// Entries visits entries in insertion order.
func (n *Namespace) Entries(fn func(e *Entry) bool) {
	for _, k := range n.keys {
		if !fn(n.entries[k]) {
			return
		}
	}
}

// Clone creates a deep copy of the namespace.
func (n *Namespace) Clone() *Namespace {
	dst := NewNamespace()
	for _, k := range n.keys {
		e := n.entries[k]
		dst.keys = append(dst.keys, k)
		dst.entries[k] = &Entry{
			Key:      e.Key,
			Value:    configtree.CloneValue(e.Value),
			Source:   e.Source,
			baseline: configtree.CloneValue(e.baseline),
		}
	}
	return dst
}

// DeleteSubtree removes the entry for key and every entry beneath it.
// Used when a bare theme key replaces a subtree wholesale.
func (n *Namespace) DeleteSubtree(prefix string) {
	dotted := prefix + "."
	kept := n.keys[:0]
	for _, k := range n.keys {
		if k == prefix || strings.HasPrefix(k, dotted) {
			delete(n.entries, k)
			continue
		}
		kept = append(kept, k)
	}
	n.keys = kept
}

// Subtree rebuilds the nested mapping of all entries under prefix.
// Returns nil if no entries exist there.
func (n *Namespace) Subtree(prefix string) *configtree.Map {
	dotted := prefix + "."
	var out *configtree.Map
	for _, k := range n.keys {
		if !strings.HasPrefix(k, dotted) {
			continue
		}
		if out == nil {
			out = configtree.NewMap()
		}
		rest := strings.Split(k[len(dotted):], ".")
		cur := out
		for _, seg := range rest[:len(rest)-1] {
			next, ok := cur.GetMap(seg)
			if !ok {
				next = configtree.NewMap()
				cur.Set(seg, next)
			}
			cur = next
		}
		cur.Set(rest[len(rest)-1], configtree.CloneValue(n.entries[k].Value))
	}
	return out
}

// Lookup resolves a theme accessor path against the namespace. An exact
// entry match wins; a longer path descends into the entry value (tuple
// or sequence indexing); otherwise the nested subtree under the path is
// rebuilt. Missing paths yield (nil, false).
func (n *Namespace) Lookup(path string) (any, bool) {
	// Longest dotted prefix that names an entry.
	head := path
	rest := ""
	bracketed := false
	for {
		if idx := strings.IndexByte(head, '['); idx >= 0 {
			rest = head[idx:] + rest
			head = head[:idx]
			bracketed = true
		}
		if e, ok := n.entries[head]; ok {
			if rest == "" {
				return configtree.CloneValue(e.Value), true
			}
			return configtree.Resolve(e.Value, rest)
		}
		dot := strings.LastIndexByte(head, '.')
		if dot < 0 {
			break
		}
		rest = head[dot:] + rest
		head = head[:dot]
	}

	// No entry matched. A plain dotted path may still name an
	// intermediate subtree; entry keys never contain brackets, so an
	// indexed path cannot.
	if bracketed {
		return nil, false
	}
	if sub := n.Subtree(path); sub != nil {
		return sub, true
	}
	return nil, false
}

// Get implements configtree.Getter for deferred theme values.
func (n *Namespace) Get(path string) (any, bool) {
	return n.Lookup(path)
}

// Tuple builds a tuple value from a primary value and companions.
func Tuple(primary any, companions *configtree.Map) configtree.Tuple {
	return configtree.Tuple{Primary: primary, Companions: companions}
}
