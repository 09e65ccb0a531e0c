package merger

import (
	"reflect"
	"testing"

	"github.com/dshills/windlass/internal/configtree"
)

func TestMergePresetsPrecedence(t *testing.T) {
	p1 := configtree.NewMap().
		Set("darkMode", "media").
		Set("theme", configtree.NewMap().
			Set("extend", configtree.NewMap().
				Set("colors", configtree.NewMap().
					Set("a", "#111").
					Set("shared", "#aaa"))))
	p2 := configtree.NewMap().
		Set("theme", configtree.NewMap().
			Set("extend", configtree.NewMap().
				Set("colors", configtree.NewMap().
					Set("b", "#222").
					Set("shared", "#bbb"))))

	cfg := configtree.NewMap().
		Set("presets", []any{p1, p2}).
		Set("theme", configtree.NewMap().
			Set("extend", configtree.NewMap().
				Set("colors", configtree.NewMap().
					Set("shared", "#ccc"))))

	merged := ApplyPresets(cfg)

	// A key only in p2 appears.
	if v, _ := configtree.Resolve(merged, "theme.extend.colors.b"); v != "#222" {
		t.Errorf("theme.extend.colors.b = %v", v)
	}
	// A key only in p1 appears.
	if v, _ := configtree.Resolve(merged, "theme.extend.colors.a"); v != "#111" {
		t.Errorf("theme.extend.colors.a = %v", v)
	}
	// p2 beats p1, config beats both.
	if v, _ := configtree.Resolve(merged, "theme.extend.colors.shared"); v != "#ccc" {
		t.Errorf("theme.extend.colors.shared = %v, want config value", v)
	}
	// Scalar from p1 untouched by others survives.
	if v, _ := merged.Get("darkMode"); v != "media" {
		t.Errorf("darkMode = %v", v)
	}
	if merged.Has("presets") {
		t.Error("presets key must not survive the fold")
	}
}

func TestMergePresetsLaterWins(t *testing.T) {
	p1 := configtree.NewMap().Set("prefix", "a-")
	p2 := configtree.NewMap().Set("prefix", "b-")

	merged := MergePresets([]any{p1, p2})
	if v, _ := merged.Get("prefix"); v != "b-" {
		t.Errorf("prefix = %v, want b- (later preset wins)", v)
	}
}

func TestMergePresetsNested(t *testing.T) {
	inner := configtree.NewMap().Set("darkMode", "selector").Set("prefix", "inner-")
	outer := configtree.NewMap().
		Set("presets", []any{inner}).
		Set("prefix", "outer-")

	merged := ApplyPresets(configtree.NewMap().Set("presets", []any{outer}))

	// Depth-first: outer's own value beats its nested preset.
	if v, _ := merged.Get("prefix"); v != "outer-" {
		t.Errorf("prefix = %v", v)
	}
	if v, _ := merged.Get("darkMode"); v != "selector" {
		t.Errorf("darkMode = %v, want value inherited from inner preset", v)
	}
}

func TestMergePresetsSkipsMalformed(t *testing.T) {
	merged := MergePresets([]any{"not-a-map", int64(7), configtree.NewMap().Set("prefix", "ok-")})
	if v, _ := merged.Get("prefix"); v != "ok-" {
		t.Errorf("prefix = %v", v)
	}
	if merged.Len() != 1 {
		t.Errorf("malformed presets must be skipped, got %d keys", merged.Len())
	}
}

func TestMergePresetsPluginListsConcatenate(t *testing.T) {
	p1 := configtree.NewMap().Set("plugins", []any{"./from-preset.lua"})
	cfg := configtree.NewMap().
		Set("presets", []any{p1}).
		Set("plugins", []any{"./from-config.lua"})

	merged := ApplyPresets(cfg)

	seq, _ := merged.GetSlice("plugins")
	want := []any{"./from-preset.lua", "./from-config.lua"}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("plugins = %v, want %v", seq, want)
	}
}

func TestNormalize(t *testing.T) {
	cfg := configtree.NewMap().
		Set("theme", configtree.NewMap().Set("extend", configtree.NewMap())).
		Set("darkMode", "selector").
		Set("content", []any{"./src/**/*.html"}).
		Set("prefix", "tw-").
		Set("important", true).
		Set("plugins", []any{"./plugin.lua"}).
		Set("unknownKey", "ignored")

	n := Normalize(cfg, "/proj")

	if n.Theme == nil {
		t.Error("theme missing")
	}
	if n.DarkMode != "selector" {
		t.Errorf("darkMode = %v", n.DarkMode)
	}
	if n.Prefix != "tw-" {
		t.Errorf("prefix = %v", n.Prefix)
	}
	if !n.Important {
		t.Error("important = false")
	}
	if len(n.Plugins) != 1 {
		t.Errorf("plugins = %v", n.Plugins)
	}
	if len(n.Content) != 1 || n.Content[0] != (Glob{Base: "/proj", Pattern: "./src/**/*.html"}) {
		t.Errorf("content = %v", n.Content)
	}
}

func TestNormalizeMalformedShapes(t *testing.T) {
	cfg := configtree.NewMap().
		Set("theme", "not-a-map").
		Set("important", "yes").
		Set("plugins", "not-a-list")

	n := Normalize(cfg, "/proj")

	if n.Theme != nil {
		t.Error("non-mapping theme must be ignored")
	}
	if n.Important {
		t.Error("non-bool important must be ignored")
	}
	if n.Plugins != nil {
		t.Error("non-sequence plugins must be ignored")
	}
}

func TestNormalizeNil(t *testing.T) {
	n := Normalize(nil, "/proj")
	if n.Config == nil || n.Config.Len() != 0 {
		t.Error("nil config should normalize to an empty tree")
	}
}
