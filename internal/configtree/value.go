package configtree

// Map is an ordered mapping from string keys to config values.
//
// Values may be scalars (string, bool, int64, float64), []any sequences,
// nested *Map mappings, Tuple values, or Deferred computations. Iteration
// follows key insertion order.
type Map struct {
	keys  []string
	items map[string]any
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{items: make(map[string]any)}
}

// Set stores a value under key, appending the key if new.
// Returns the map for chaining.
func (m *Map) Set(key string, value any) *Map {
	if _, exists := m.items[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
	return m
}

// Get returns the value for key and whether it exists.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key exists.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.items[key]
	return ok
}

// Delete removes key. Returns true if it existed.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// ForEach visits entries in insertion order. Returning false stops
// iteration.
func (m *Map) ForEach(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// Clone creates a deep copy of the map.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	dst := NewMap()
	for _, k := range m.keys {
		dst.Set(k, CloneValue(m.items[k]))
	}
	return dst
}

// GetMap returns the value for key if it is a nested map.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Map)
	return nested, ok
}

// GetString returns the value for key if it is a string.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetSlice returns the value for key if it is a sequence.
func (m *Map) GetSlice(key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Tuple pairs a primary value with named companion values, such as a
// font size with its line height.
type Tuple struct {
	// Primary is the main value.
	Primary any

	// Companions holds named secondary values. May be nil.
	Companions *Map
}

// Clone creates a deep copy of the tuple.
func (t Tuple) Clone() Tuple {
	return Tuple{
		Primary:    CloneValue(t.Primary),
		Companions: t.Companions.Clone(),
	}
}

// Getter provides read access to resolved theme values by dotted path.
// Deferred values receive one at evaluation time.
type Getter interface {
	// Get returns the value at path and whether it exists.
	Get(path string) (any, bool)
}

// Deferred is a config value computed lazily against the theme resolved
// so far. Evaluation must not mutate the theme.
type Deferred func(theme Getter) any

// CloneValue creates a deep copy of a config value.
// Deferred values are shared, not copied.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		return cloneSlice(val)
	case Tuple:
		return val.Clone()
	default:
		return v
	}
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = CloneValue(v)
	}
	return dst
}

// Equal reports deep equality of two config values.
// Deferred values are never equal.
func Equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch va := a.(type) {
	case *Map:
		vb, ok := b.(*Map)
		if !ok {
			return false
		}
		return mapsEqual(va, vb)
	case []any:
		vb, ok := b.([]any)
		if !ok {
			return false
		}
		return slicesEqual(va, vb)
	case Tuple:
		vb, ok := b.(Tuple)
		if !ok {
			return false
		}
		return Equal(va.Primary, vb.Primary) && mapsEqual(va.Companions, vb.Companions)
	case Deferred:
		return false
	default:
		return a == b
	}
}

func mapsEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.ForEach(func(k string, va any) bool {
		vb, ok := b.Get(k)
		if !ok || !Equal(va, vb) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func slicesEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
