// Package theme resolves legacy theme configuration into the engine's
// custom-property namespace.
//
// A Namespace is an ordered mapping from dotted theme keys (e.g.
// "colors.primary", "fontSize.base") to values, where each entry carries
// the source it came from. Sources form a precedence ladder:
//
//	┌─────────────────────────┐
//	│  4. Native CSS          │  ← Highest
//	├─────────────────────────┤
//	│  3. Plugin execution    │
//	├─────────────────────────┤
//	│  2. Legacy config       │  ← presets folded in before the config
//	├─────────────────────────┤
//	│  1. Built-in baseline   │  ← Lowest
//	└─────────────────────────┘
//
// An entry is only replaced by an equal-or-higher source. Entries still
// carrying the baseline source, or whose value equals the baseline
// value, are suppressed from custom-property emission: only real
// overrides are emitted.
//
// Function-valued theme branches are evaluated during resolution against
// the namespace as resolved so far, in declaration order. Forward
// references resolve as not found.
package theme
