package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/windlass/internal/configtree"
)

// Declaration is one emitted custom-property declaration.
type Declaration struct {
	// Property is the custom property name, e.g. "--font-size-base".
	Property string

	// Value is the property value.
	Value string
}

// namespaceRenames maps legacy theme namespaces to the engine's
// property namespaces.
var namespaceRenames = map[string]string{
	"colors":  "color",
	"screens": "breakpoint",
}

// Declarations emits the override entries of the namespace as
// custom-property declarations, in entry order.
//
// Baseline entries, and entries whose value still equals the baseline
// value, are suppressed. Tuple entries expand to a primary declaration
// plus one declaration per companion, named
// "<property>--<companion>". Legacy screens overridden only by config
// feed variant generation but are not re-emitted as properties; a
// breakpoint is emitted only when natively CSS-declared with a
// non-default value.
func (n *Namespace) Declarations() []Declaration {
	var decls []Declaration
	n.Entries(func(e *Entry) bool {
		if e.Default() || Equivalent(e.Value, e.baseline) {
			return true
		}
		if strings.HasPrefix(e.Key, "screens.") && e.Source != SourceCSS {
			return true
		}
		prop := PropertyName(e.Key)
		switch v := e.Value.(type) {
		case configtree.Tuple:
			if v.Primary != nil {
				decls = append(decls, Declaration{Property: prop, Value: stringify(v.Primary)})
			}
			v.Companions.ForEach(func(ck string, cv any) bool {
				decls = append(decls, Declaration{
					Property: prop + "--" + kebab(ck),
					Value:    stringify(cv),
				})
				return true
			})
		default:
			decls = append(decls, Declaration{Property: prop, Value: stringify(v)})
		}
		return true
	})
	return decls
}

// PropertyName converts a dotted theme key to its custom property name,
// e.g. "fontSize.base" becomes "--font-size-base" and
// "colors.slate.200" becomes "--color-slate-200".
func PropertyName(key string) string {
	segs := strings.Split(key, ".")
	parts := make([]string, len(segs))
	for i, seg := range segs {
		if i == 0 {
			if renamed, ok := namespaceRenames[seg]; ok {
				seg = renamed
			}
		}
		parts[i] = kebab(seg)
	}
	return "--" + strings.Join(parts, "-")
}

// kebab converts camelCase to kebab-case. Digits and existing hyphens
// pass through, so "2xl" stays "2xl".
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stringify renders a theme leaf as a CSS value. Sequences join with
// ", " (font stacks), numbers render unquoted.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case configtree.Tuple:
		return stringify(val.Primary)
	default:
		return fmt.Sprintf("%v", val)
	}
}
