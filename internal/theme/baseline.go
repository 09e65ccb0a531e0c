package theme

import (
	"github.com/dshills/windlass/internal/configtree"
)

// DefaultBaseline builds the engine's built-in theme baseline. Every
// entry carries SourceBaseline and is suppressed from emission until
// overridden.
func DefaultBaseline() *Namespace {
	ns := NewNamespace()

	ns.Set("fontFamily.sans", []any{
		"ui-sans-serif", "system-ui", "sans-serif",
		`"Apple Color Emoji"`, `"Segoe UI Emoji"`, `"Segoe UI Symbol"`, `"Noto Color Emoji"`,
	}, SourceBaseline)
	ns.Set("fontFamily.serif", []any{"ui-serif", "Georgia", "Cambria", `"Times New Roman"`, "Times", "serif"}, SourceBaseline)
	ns.Set("fontFamily.mono", []any{
		"ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas",
		`"Liberation Mono"`, `"Courier New"`, "monospace",
	}, SourceBaseline)

	// Default-font properties resolve through var() until the shim
	// overrides them with concrete values.
	ns.Set("defaultFont.family", "var(--font-sans)", SourceBaseline)
	ns.Set("defaultFont.featureSettings", "var(--font-sans--font-feature-settings)", SourceBaseline)
	ns.Set("defaultFont.variationSettings", "var(--font-sans--font-variation-settings)", SourceBaseline)
	ns.Set("defaultMonoFont.family", "var(--font-mono)", SourceBaseline)
	ns.Set("defaultMonoFont.featureSettings", "var(--font-mono--font-feature-settings)", SourceBaseline)
	ns.Set("defaultMonoFont.variationSettings", "var(--font-mono--font-variation-settings)", SourceBaseline)

	screens := []struct{ name, min string }{
		{"sm", "40rem"}, {"md", "48rem"}, {"lg", "64rem"}, {"xl", "80rem"}, {"2xl", "96rem"},
	}
	for _, s := range screens {
		ns.Set("screens."+s.name, s.min, SourceBaseline)
	}

	sizes := []struct{ name, size, leading string }{
		{"xs", "0.75rem", "calc(1 / 0.75)"},
		{"sm", "0.875rem", "calc(1.25 / 0.875)"},
		{"base", "1rem", "calc(1.5 / 1)"},
		{"lg", "1.125rem", "calc(1.75 / 1.125)"},
		{"xl", "1.25rem", "calc(1.75 / 1.25)"},
		{"2xl", "1.5rem", "calc(2 / 1.5)"},
	}
	for _, s := range sizes {
		ns.Set("fontSize."+s.name, Tuple(s.size, configtree.NewMap().Set("lineHeight", s.leading)), SourceBaseline)
	}

	colors := map[string]string{
		"black": "#000000",
		"white": "#ffffff",
	}
	ns.Set("colors.transparent", "transparent", SourceBaseline)
	ns.Set("colors.current", "currentcolor", SourceBaseline)
	for _, name := range []string{"black", "white"} {
		ns.Set("colors."+name, colors[name], SourceBaseline)
	}
	slate := []struct{ shade, hex string }{
		{"50", "#f8fafc"}, {"100", "#f1f5f9"}, {"200", "#e2e8f0"}, {"300", "#cbd5e1"},
		{"400", "#94a3b8"}, {"500", "#64748b"}, {"600", "#475569"}, {"700", "#334155"},
		{"800", "#1e293b"}, {"900", "#0f172a"}, {"950", "#020617"},
	}
	for _, c := range slate {
		ns.Set("colors.slate."+c.shade, c.hex, SourceBaseline)
	}
	red := []struct{ shade, hex string }{
		{"50", "#fef2f2"}, {"100", "#fee2e2"}, {"500", "#ef4444"}, {"900", "#7f1d1d"},
	}
	for _, c := range red {
		ns.Set("colors.red."+c.shade, c.hex, SourceBaseline)
	}

	ns.Set("spacing", "0.25rem", SourceBaseline)
	ns.Set("radius.sm", "0.25rem", SourceBaseline)
	ns.Set("radius.md", "0.375rem", SourceBaseline)
	ns.Set("radius.lg", "0.5rem", SourceBaseline)

	return ns
}
