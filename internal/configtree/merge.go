package configtree

// Merge recursively merges src into dst and returns dst.
// Values in src override values in dst. Mappings merge key-wise and
// recursively; other kinds are replaced. Keys new to dst are appended in
// src order, so merge output order is deterministic.
func Merge(dst, src *Map) *Map {
	if dst == nil {
		dst = NewMap()
	}
	if src == nil {
		return dst
	}

	src.ForEach(func(key string, srcVal any) bool {
		dstVal, exists := dst.Get(key)
		if !exists {
			dst.Set(key, CloneValue(srcVal))
			return true
		}

		// Both mappings merge recursively. Everything else replaces.
		srcMap, srcIsMap := srcVal.(*Map)
		dstMap, dstIsMap := dstVal.(*Map)
		if srcIsMap && dstIsMap {
			dst.Set(key, Merge(dstMap, srcMap))
		} else {
			dst.Set(key, CloneValue(srcVal))
		}
		return true
	})

	return dst
}

// Flatten flattens nested mappings into a single-level map with
// dot-joined keys, preserving traversal order. Sequences, tuples and
// deferred values are treated as leaves.
func Flatten(m *Map) *Map {
	result := NewMap()
	flattenInto(m, "", result)
	return result
}

func flattenInto(m *Map, prefix string, result *Map) {
	m.ForEach(func(key string, val any) bool {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := val.(*Map); ok {
			flattenInto(nested, fullKey, result)
		} else {
			result.Set(fullKey, val)
		}
		return true
	})
}
