package configtree

import "testing"

func TestMapSetGetDelete(t *testing.T) {
	m := NewMap()

	m.Set("a", "1").Set("b", "2").Set("a", "10")

	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if v, _ := m.Get("a"); v != "10" {
		t.Errorf("Get(a) = %v, want 10", v)
	}
	keys := m.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Errorf("re-setting a key must keep its position, got %v", keys)
	}

	if !m.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if m.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if m.Has("a") {
		t.Error("a should be gone after delete")
	}
}

func TestMapNilSafe(t *testing.T) {
	var m *Map

	if _, ok := m.Get("a"); ok {
		t.Error("Get on nil map should report not found")
	}
	if m.Has("a") || m.Delete("a") || m.Len() != 0 {
		t.Error("nil map accessors should be no-ops")
	}
	if m.Clone() != nil {
		t.Error("Clone of nil map should be nil")
	}
	m.ForEach(func(string, any) bool {
		t.Error("ForEach on nil map should not visit")
		return true
	})
}

func TestCloneIsDeep(t *testing.T) {
	src := NewMap().
		Set("colors", NewMap().Set("primary", "#f00")).
		Set("fonts", []any{"serif"}).
		Set("base", Tuple{Primary: "1rem", Companions: NewMap().Set("lineHeight", "1.5rem")})

	clone := src.Clone()

	nested, _ := clone.GetMap("colors")
	nested.Set("primary", "#00f")
	fonts, _ := clone.GetSlice("fonts")
	fonts[0] = "mono"
	base, _ := clone.Get("base")
	base.(Tuple).Companions.Set("lineHeight", "2rem")

	if v, _ := Resolve(src, "colors.primary"); v != "#f00" {
		t.Errorf("clone aliased nested map: %v", v)
	}
	if v, _ := Resolve(src, "fonts[0]"); v != "serif" {
		t.Errorf("clone aliased sequence: %v", v)
	}
	if v, _ := Resolve(src, "base[1].lineHeight"); v != "1.5rem" {
		t.Errorf("clone aliased tuple companions: %v", v)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"nil nil", nil, nil, true},
		{"nil non-nil", nil, "1", false},
		{"same scalar", "a", "a", true},
		{"different scalar", "a", "b", false},
		{"same map", NewMap().Set("a", "1"), NewMap().Set("a", "1"), true},
		{"different map", NewMap().Set("a", "1"), NewMap().Set("a", "2"), false},
		{"map vs scalar", NewMap().Set("a", "1"), "a", false},
		{"same slice", []any{"1", "2"}, []any{"1", "2"}, true},
		{"different length slice", []any{"1"}, []any{"1", "2"}, false},
		{
			"same tuple",
			Tuple{Primary: "1rem", Companions: NewMap().Set("lineHeight", "1.5rem")},
			Tuple{Primary: "1rem", Companions: NewMap().Set("lineHeight", "1.5rem")},
			true,
		},
		{
			"different tuple companion",
			Tuple{Primary: "1rem", Companions: NewMap().Set("lineHeight", "1.5rem")},
			Tuple{Primary: "1rem", Companions: NewMap().Set("lineHeight", "2rem")},
			false,
		},
		{
			"deferred never equal",
			Deferred(func(Getter) any { return nil }),
			Deferred(func(Getter) any { return nil }),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}
