package configtree

import "strconv"

// pathSegment is one step of a lookup path: a key or a numeric index.
type pathSegment struct {
	key   string
	index int
	isIdx bool
}

// parsePath splits a lookup path into segments. Paths use dotted keys
// with optional bracket indices, e.g. "fontSize.base[1].lineHeight".
// Returns nil for a malformed path.
func parsePath(path string) []pathSegment {
	var segs []pathSegment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
		case '[':
			end := i + 1
			for end < len(path) && path[end] != ']' {
				end++
			}
			if end >= len(path) {
				return nil
			}
			n, err := strconv.Atoi(path[i+1 : end])
			if err != nil || n < 0 {
				return nil
			}
			segs = append(segs, pathSegment{index: n, isIdx: true})
			i = end + 1
		default:
			end := i
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			segs = append(segs, pathSegment{key: path[i:end]})
			i = end
		}
	}
	return segs
}

// Resolve looks up path within a config value. Missing or mismatched
// paths yield (nil, false), never an error.
//
// Tuple addressing: index [0] yields the primary value, [1] the
// companions mapping, so "fontSize.base[1].lineHeight" reads one
// companion. A path ending at a tuple yields the tuple itself; use
// Scalar to collapse it to the primary value in scalar contexts.
func Resolve(root any, path string) (any, bool) {
	segs := parsePath(path)
	if segs == nil {
		return nil, false
	}

	current := root
	for _, seg := range segs {
		switch node := current.(type) {
		case *Map:
			if seg.isIdx {
				return nil, false
			}
			v, ok := node.Get(seg.key)
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if !seg.isIdx || seg.index >= len(node) {
				return nil, false
			}
			current = node[seg.index]
		case Tuple:
			if seg.isIdx {
				switch seg.index {
				case 0:
					current = node.Primary
				case 1:
					if node.Companions == nil {
						return nil, false
					}
					current = node.Companions
				default:
					return nil, false
				}
				continue
			}
			// A plain key on a tuple reads a companion.
			v, ok := node.Companions.Get(seg.key)
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}
	return current, true
}

// Scalar collapses a value to its scalar form: a tuple yields its
// primary value, everything else passes through.
func Scalar(v any) any {
	if t, ok := v.(Tuple); ok {
		return t.Primary
	}
	return v
}
