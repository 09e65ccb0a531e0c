package merger

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dshills/windlass/internal/configtree"
)

// Glob is one file-discovery descriptor: a base directory plus a
// pattern, passed through to the host's content scanner untouched.
type Glob struct {
	// Base is the directory the pattern resolves against.
	Base string

	// Pattern is the glob pattern, kept verbatim.
	Pattern string
}

// ContentGlobs extracts the "content" entries of a config as glob
// descriptors. Relative patterns resolve against base; absolute
// patterns split their static prefix into the descriptor base. Entries
// with invalid glob syntax or unrecognized shapes are skipped.
func ContentGlobs(cfg *configtree.Map, base string) []Glob {
	seq, ok := cfg.GetSlice("content")
	if !ok {
		return nil
	}

	var globs []Glob
	for _, entry := range seq {
		switch v := entry.(type) {
		case string:
			if g, ok := globFromPattern(v, base); ok {
				globs = append(globs, g)
			}
		case *configtree.Map:
			pattern, ok := v.GetString("pattern")
			if !ok {
				continue
			}
			if !validPattern(pattern) {
				continue
			}
			g := Glob{Base: base, Pattern: pattern}
			if b, ok := v.GetString("base"); ok {
				g.Base = b
			}
			globs = append(globs, g)
		}
	}
	return globs
}

func globFromPattern(pattern, base string) (Glob, bool) {
	if pattern == "" || !validPattern(pattern) {
		return Glob{}, false
	}
	if filepath.IsAbs(pattern) {
		staticBase, rest := doublestar.SplitPattern(pattern)
		return Glob{Base: staticBase, Pattern: rest}, true
	}
	return Glob{Base: base, Pattern: pattern}, true
}

func validPattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}
