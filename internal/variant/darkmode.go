package variant

import (
	"github.com/dshills/windlass/internal/theme"
)

// Dark-mode wrapping preludes.
const (
	darkMediaPrelude    = "@media (prefers-color-scheme: dark)"
	darkSelectorPrelude = "&:where(.dark, .dark *)"
)

// DarkVariant turns the legacy darkMode option into a "dark" variant
// definition.
//
// Accepted forms: "media" wraps in a prefers-color-scheme media
// condition, "selector" wraps in an ancestor-class selector, and the
// two-element ["variant", selector] form wraps with the caller's
// selector verbatim. A missing or unrecognized option falls back to the
// media strategy.
func DarkVariant(option any, src theme.Source) *Definition {
	def := &Definition{
		Name:   "dark",
		Wrap:   SelectorWrapper(darkMediaPrelude),
		Weight: WeightDefault,
		Source: src,
	}

	switch opt := option.(type) {
	case nil:
		return def
	case string:
		switch opt {
		case "media":
			return def
		case "selector", "class":
			def.Wrap = SelectorWrapper(darkSelectorPrelude)
			return def
		}
		return def
	case []any:
		if len(opt) != 2 {
			return def
		}
		strategy, _ := opt[0].(string)
		selector, ok := opt[1].(string)
		if strategy != "variant" || !ok || trimSelector(selector) == "" {
			return def
		}
		def.Wrap = SelectorWrapper(trimSelector(selector))
		return def
	default:
		return def
	}
}

// Reconcile registers the dark variant derived from the legacy darkMode
// option. Registration goes through the ordinary registry path, so a
// native CSS-declared dark variant still wins.
func Reconcile(reg *Registry, darkMode any, src theme.Source) {
	reg.Add(DarkVariant(darkMode, src))
}
