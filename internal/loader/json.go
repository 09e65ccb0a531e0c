package loader

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/dshills/windlass/internal/configtree"
)

// JSONLoader decodes inert JSON configs. Object key order in the
// document is preserved in the resulting tree, which keeps merge and
// emission output deterministic across loads.
type JSONLoader struct{}

// NewJSONLoader creates a JSON config loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// Load reads and decodes the JSON config at path.
func (l *JSONLoader) Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotConfig
	}
	return &Result{
		Value: jsonToMap(root),
		Base:  filepath.Dir(path),
	}, nil
}

// jsonToMap converts a JSON object in document order.
func jsonToMap(obj gjson.Result) *configtree.Map {
	m := configtree.NewMap()
	obj.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), jsonToValue(value))
		return true
	})
	return m
}

func jsonToValue(v gjson.Result) any {
	switch {
	case v.IsObject():
		return jsonToMap(v)
	case v.IsArray():
		items := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonToValue(item)
		}
		return out
	case v.Type == gjson.String:
		return v.String()
	case v.Type == gjson.Number:
		f := v.Float()
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case v.Type == gjson.True:
		return true
	case v.Type == gjson.False:
		return false
	default:
		return nil
	}
}
