package theme

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/windlass/internal/configtree"
)

// FlattenPalette rewrites a nested color mapping to dot-joined leaf
// keys, e.g. {slate: {200: "#e2e8f0"}} becomes {"slate.200": "#e2e8f0"}.
// Utility-generating plugins consume palettes in this flat form.
func FlattenPalette(m *configtree.Map) *configtree.Map {
	return configtree.Flatten(m)
}

// Equivalent reports whether two theme values are interchangeable.
// Beyond deep equality, two color strings that parse to the same color
// (e.g. "#FFF" and "#ffffff") are equivalent, so re-stating a default
// in a different spelling does not turn it into an override.
func Equivalent(a, b any) bool {
	if configtree.Equal(a, b) {
		return true
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if !aok || !bok {
		return false
	}
	ca, aok := canonicalColor(sa)
	cb, bok := canonicalColor(sb)
	return aok && bok && ca == cb
}

// canonicalColor normalizes a hex color string to lowercase #rrggbb.
func canonicalColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
