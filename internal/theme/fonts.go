package theme

import (
	"github.com/dshills/windlass/internal/configtree"
)

// Default-font entry keys bound by the compatibility shim.
const (
	keyDefaultFont     = "defaultFont"
	keyDefaultMonoFont = "defaultMonoFont"
)

// ApplyDefaultFonts maps legacy fontFamily.sans and fontFamily.mono
// overrides onto the engine's default-font custom properties: family,
// feature settings and variation settings.
//
// Recognized shapes: a scalar family string, a sequence of family names
// (joined with ", "), or a tuple of family plus a detail mapping that
// may carry fontFeatureSettings and fontVariationSettings. Settings
// omitted by the detail mapping default to "normal" once the family is
// overridden. Any other shape leaves all three properties at baseline.
func ApplyDefaultFonts(ns *Namespace) {
	applyFont(ns, "fontFamily.sans", keyDefaultFont)
	applyFont(ns, "fontFamily.mono", keyDefaultMonoFont)
}

func applyFont(ns *Namespace, from, to string) {
	e, ok := ns.EntryFor(from)
	if !ok || e.Default() {
		return
	}

	family, feature, variation, ok := fontParts(e.Value)
	if !ok {
		return
	}

	ns.Set(to+".family", family, e.Source)
	ns.Set(to+".featureSettings", feature, e.Source)
	ns.Set(to+".variationSettings", variation, e.Source)
}

// fontParts extracts family, feature-settings and variation-settings
// from a legacy fontFamily value.
func fontParts(v any) (family, feature, variation string, ok bool) {
	feature = "normal"
	variation = "normal"

	switch val := v.(type) {
	case string:
		return val, feature, variation, true
	case []any:
		for _, item := range val {
			if _, isStr := item.(string); !isStr {
				return "", "", "", false
			}
		}
		return stringify(val), feature, variation, true
	case configtree.Tuple:
		switch p := val.Primary.(type) {
		case string:
			family = p
		case []any:
			family = stringify(p)
		default:
			return "", "", "", false
		}
		if s, found := val.Companions.GetString("fontFeatureSettings"); found {
			feature = s
		}
		if s, found := val.Companions.GetString("fontVariationSettings"); found {
			variation = s
		}
		return family, feature, variation, true
	default:
		return "", "", "", false
	}
}
