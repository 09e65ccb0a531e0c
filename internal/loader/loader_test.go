package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/windlass/internal/configtree"
)

func TestDispatchRoutesByExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"prefix":"j-"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`return { prefix = "l-" }`), 0644); err != nil {
		t.Fatal(err)
	}

	d := NewDispatch(zerolog.Nop())

	res, err := d.Load("./a.json", dir)
	if err != nil {
		t.Fatalf("json load: %v", err)
	}
	if v, _ := res.Value.(*configtree.Map).Get("prefix"); v != "j-" {
		t.Errorf("json prefix = %v", v)
	}

	res, err = d.Load("./b.lua", dir)
	if err != nil {
		t.Fatalf("lua load: %v", err)
	}
	if v, _ := res.Value.(*configtree.Map).Get("prefix"); v != "l-" {
		t.Errorf("lua prefix = %v", v)
	}
}

func TestDispatchUnsupportedExtension(t *testing.T) {
	d := NewDispatch(zerolog.Nop())

	_, err := d.Load("./config.yaml", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Ref != "./config.yaml" {
		t.Errorf("error = %v", err)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("cause = %v, want ErrUnsupported", err)
	}
}

func TestDispatchMissingFile(t *testing.T) {
	d := NewDispatch(zerolog.Nop())

	_, err := d.Load("./nope.json", t.TempDir())
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Errorf("error = %v, want *LoadError", err)
	}
}

type countingLoader struct {
	calls int
	res   *Result
}

func (c *countingLoader) Load(ref, base string) (*Result, error) {
	c.calls++
	return c.res, nil
}

func TestCachedLoadsOnce(t *testing.T) {
	inner := &countingLoader{res: &Result{Value: configtree.NewMap()}}
	c := NewCached(inner)

	first, _ := c.Load("./preset.lua", "/proj")
	second, _ := c.Load("./preset.lua", "/proj")
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if first != second {
		t.Error("cached loads must return the same result")
	}

	// A different resolved path is a different module.
	c.Load("./preset.lua", "/other")
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}

	// The same module reached by an equivalent path is cached.
	c.Load("preset.lua", "/proj")
	if inner.calls != 2 {
		t.Errorf("equivalent path must hit the cache, calls = %d", inner.calls)
	}
}

func TestCachedCachesFailures(t *testing.T) {
	c := NewCached(NewDispatch(zerolog.Nop()))
	dir := t.TempDir()

	_, err1 := c.Load("./missing.json", dir)
	_, err2 := c.Load("./missing.json", dir)
	if err1 == nil || err1 != err2 {
		t.Error("failures must cache like successes")
	}
}
