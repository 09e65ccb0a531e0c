package theme

import (
	"bytes"
	"testing"

	"github.com/dshills/windlass/internal/configtree"
)

func baseNS() *Namespace {
	ns := NewNamespace()
	ns.Set("colors.red.500", "#ef4444", SourceBaseline)
	ns.Set("colors.blue.500", "#3b82f6", SourceBaseline)
	ns.Set("spacing", "0.25rem", SourceBaseline)
	return ns
}

func TestApplyThemeBareReplacesSubtree(t *testing.T) {
	ns := baseNS()
	r := NewResolver(ns)

	r.ApplyTheme(configtree.NewMap().
		Set("colors", configtree.NewMap().
			Set("primary", "#111111")), SourceConfig)

	if ns.Has("colors.red.500") || ns.Has("colors.blue.500") {
		t.Error("bare theme key must replace the whole subtree")
	}
	e, ok := ns.EntryFor("colors.primary")
	if !ok || e.Value != "#111111" || e.Source != SourceConfig {
		t.Errorf("colors.primary = %+v", e)
	}
	if !ns.Has("spacing") {
		t.Error("unrelated subtrees must survive")
	}
}

func TestApplyThemeExtendMerges(t *testing.T) {
	ns := baseNS()
	r := NewResolver(ns)

	r.ApplyTheme(configtree.NewMap().
		Set("extend", configtree.NewMap().
			Set("colors", configtree.NewMap().
				Set("primary", "#111111"))), SourceConfig)

	if !ns.Has("colors.red.500") {
		t.Error("extend must keep baseline siblings")
	}
	if e, _ := ns.EntryFor("colors.primary"); e == nil || e.Value != "#111111" {
		t.Error("extend must add the new entry")
	}
}

func TestApplyThemeNonMappingExtendIgnored(t *testing.T) {
	ns := baseNS()
	r := NewResolver(ns)

	r.ApplyTheme(configtree.NewMap().Set("extend", "bogus"), SourceConfig)

	if ns.Len() != 3 {
		t.Error("malformed extend must leave the namespace untouched")
	}
}

func TestApplyThemeTupleShape(t *testing.T) {
	ns := NewNamespace()
	r := NewResolver(ns)

	r.ApplyExtend(configtree.NewMap().
		Set("fontSize", configtree.NewMap().
			Set("base", []any{"1rem", configtree.NewMap().Set("lineHeight", "1.5rem")})), SourceConfig)

	e, ok := ns.EntryFor("fontSize.base")
	if !ok {
		t.Fatal("fontSize.base missing")
	}
	tuple, isTuple := e.Value.(configtree.Tuple)
	if !isTuple {
		t.Fatalf("expected tuple, got %T", e.Value)
	}
	if tuple.Primary != "1rem" {
		t.Errorf("primary = %v", tuple.Primary)
	}
}

func TestApplyThemeCompanionOnlyOverride(t *testing.T) {
	ns := NewNamespace()
	ns.Set("fontSize.base", Tuple("0rem", configtree.NewMap().Set("lineHeight", "1rem")), SourceBaseline)
	r := NewResolver(ns)

	r.ApplyExtend(configtree.NewMap().
		Set("fontSize", configtree.NewMap().
			Set("base", configtree.NewMap().Set("lineHeight", "2rem"))), SourceConfig)

	e, ok := ns.EntryFor("fontSize.base")
	if !ok {
		t.Fatal("fontSize.base missing")
	}
	tuple, isTuple := e.Value.(configtree.Tuple)
	if !isTuple {
		t.Fatalf("expected tuple, got %T", e.Value)
	}
	if tuple.Primary != "0rem" {
		t.Errorf("primary = %v, must survive a companion-only override", tuple.Primary)
	}
	if v, _ := tuple.Companions.Get("lineHeight"); v != "2rem" {
		t.Errorf("lineHeight = %v", v)
	}
	if ns.Has("fontSize.base.lineHeight") {
		t.Error("companion override must not create a sibling entry")
	}
}

func TestApplyThemeFontStackStaysSequence(t *testing.T) {
	ns := NewNamespace()
	r := NewResolver(ns)

	r.ApplyExtend(configtree.NewMap().
		Set("fontFamily", configtree.NewMap().
			Set("sans", []any{"Inter", "sans-serif"})), SourceConfig)

	e, _ := ns.EntryFor("fontFamily.sans")
	if _, isSeq := e.Value.([]any); !isSeq {
		t.Errorf("two-string sequence must not be read as a tuple, got %T", e.Value)
	}
}

func TestDeferredReadsEarlierSiblings(t *testing.T) {
	ns := NewNamespace()
	r := NewResolver(ns)

	cfg := configtree.NewMap().
		Set("colors", configtree.NewMap().Set("primary", "#ff0000")).
		Set("borderColor", configtree.Deferred(func(theme configtree.Getter) any {
			v, _ := theme.Get("colors.primary")
			return configtree.NewMap().Set("DEFAULT", v)
		}))

	r.ApplyExtend(cfg, SourceConfig)

	e, ok := ns.EntryFor("borderColor.DEFAULT")
	if !ok || e.Value != "#ff0000" {
		t.Errorf("borderColor.DEFAULT = %+v, want #ff0000", e)
	}
}

func TestDeferredForwardReferenceNotFound(t *testing.T) {
	ns := NewNamespace()
	r := NewResolver(ns)

	var found bool
	cfg := configtree.NewMap().
		Set("early", configtree.Deferred(func(theme configtree.Getter) any {
			_, found = theme.Get("late")
			return "x"
		})).
		Set("late", "y")

	r.ApplyExtend(cfg, SourceConfig)

	if found {
		t.Error("forward references must resolve as not found")
	}
	if e, _ := ns.EntryFor("early"); e == nil || e.Value != "x" {
		t.Error("deferred result should still be applied")
	}
}

func TestDeferredNilResultSkipped(t *testing.T) {
	ns := baseNS()
	r := NewResolver(ns)

	r.ApplyExtend(configtree.NewMap().
		Set("spacing", configtree.Deferred(func(configtree.Getter) any { return nil })), SourceConfig)

	e, _ := ns.EntryFor("spacing")
	if !e.Default() {
		t.Error("nil deferred result must keep the prior value")
	}
}

func TestResolveIdempotent(t *testing.T) {
	cfg := configtree.NewMap().
		Set("extend", configtree.NewMap().
			Set("colors", configtree.NewMap().
				Set("primary", "#123456").
				Set("scale", configtree.NewMap().Set("1", "#111").Set("2", "#222"))).
			Set("fontSize", configtree.NewMap().
				Set("huge", []any{"4rem", configtree.NewMap().Set("lineHeight", "1")})))

	run := func() []byte {
		ns := DefaultBaseline()
		NewResolver(ns).ApplyTheme(cfg.Clone(), SourceConfig)
		dump := configtree.NewMap()
		ns.Entries(func(e *Entry) bool {
			dump.Set(e.Key, e.Value)
			return true
		})
		return configtree.Snapshot(dump)
	}

	if a, b := run(), run(); !bytes.Equal(a, b) {
		t.Errorf("resolution is not idempotent:\n%s\n%s", a, b)
	}
}
