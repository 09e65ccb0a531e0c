package theme

import (
	"strings"

	"github.com/dshills/windlass/internal/configtree"
)

// Breakpoints returns the effective breakpoint values in entry order,
// merged across all sources. Variant generation (min-width media
// conditions and compound forms, owned by the host engine) reads these
// values; emission of breakpoint properties follows the rules in
// Declarations.
func (n *Namespace) Breakpoints() *configtree.Map {
	out := configtree.NewMap()
	n.Entries(func(e *Entry) bool {
		if name, ok := strings.CutPrefix(e.Key, "screens."); ok {
			out.Set(name, configtree.Scalar(e.Value))
		}
		return true
	})
	return out
}
