package configtree

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/sjson"
)

// Snapshot serializes a config value to deterministic JSON. Mappings
// serialize in key order, tuples as a two-element array of primary value
// and companions, deferred values as the marker string "[deferred]".
// Equal trees always produce identical bytes.
func Snapshot(v any) []byte {
	return []byte(snapshotValue(v))
}

func snapshotValue(v any) string {
	switch val := v.(type) {
	case *Map:
		return snapshotMap(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = snapshotValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Tuple:
		companions := "{}"
		if val.Companions != nil {
			companions = snapshotMap(val.Companions)
		}
		return "[" + snapshotValue(val.Primary) + "," + companions + "]"
	case Deferred:
		return `"[deferred]"`
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "null"
		}
		return string(raw)
	}
}

func snapshotMap(m *Map) string {
	doc := []byte("{}")
	m.ForEach(func(key string, val any) bool {
		updated, err := sjson.SetRawBytes(doc, escapeSegment(key), []byte(snapshotValue(val)))
		if err == nil {
			doc = updated
		}
		return true
	})
	return string(doc)
}

// escapeSegment escapes characters that carry meaning in sjson paths so
// keys like "2.5" stay single segments.
func escapeSegment(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
