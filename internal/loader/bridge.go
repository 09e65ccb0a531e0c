package loader

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/windlass/internal/configtree"
	"github.com/dshills/windlass/internal/plugin"
)

// luaModule converts between one interpreter's values and config
// trees. The mutex serializes re-entry into the interpreter from
// deferred evaluation, plugin execution, and matcher callbacks.
type luaModule struct {
	L  *lua.LState
	mu sync.Mutex
}

// toConfig converts a config table. The top-level "plugins" sequence
// gets its entries converted to runnable plugins; everywhere else,
// function values become deferred theme values.
func (m *luaModule) toConfig(t *lua.LTable) *configtree.Map {
	cfg := configtree.NewMap()
	t.ForEach(func(k, v lua.LValue) {
		key := luaKey(k)
		if key == "plugins" {
			if seq, ok := v.(*lua.LTable); ok {
				cfg.Set(key, m.toPlugins(seq))
				return
			}
		}
		cfg.Set(key, m.toGo(v))
	})
	return cfg
}

// toPlugins converts a plugins sequence. Entries may be string refs,
// bare functions, or descriptor tables with a "handler" field.
func (m *luaModule) toPlugins(seq *lua.LTable) []any {
	var plugins []any
	for i := 1; i <= seq.Len(); i++ {
		switch entry := seq.RawGetInt(i).(type) {
		case lua.LString:
			plugins = append(plugins, string(entry))
		case *lua.LFunction:
			plugins = append(plugins, m.toPlugin("", entry, nil))
		case *lua.LTable:
			fn, ok := entry.RawGetString("handler").(*lua.LFunction)
			if !ok {
				continue
			}
			name := ""
			if s, ok := entry.RawGetString("name").(lua.LString); ok {
				name = string(s)
			}
			plugins = append(plugins, m.toPlugin(name, fn, entry))
		}
	}
	return plugins
}

// toPlugin wraps a Lua function as a runnable plugin. A descriptor
// table may carry a static "config" fragment.
func (m *luaModule) toPlugin(name string, fn *lua.LFunction, descriptor *lua.LTable) plugin.Plugin {
	p := plugin.Plugin{Name: name}
	if descriptor != nil {
		if cfg, ok := descriptor.RawGetString("config").(*lua.LTable); ok {
			p.Config = m.toConfig(cfg)
		}
	}
	p.Handler = func(api plugin.API) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.L.Push(fn)
		m.L.Push(m.apiTable(api))
		return m.L.PCall(1, 0, nil)
	}
	return p
}

// toGo converts a Lua value. Tables with contiguous 1..n integer keys
// become sequences, other tables become ordered maps, and functions
// become deferred theme values.
func (m *luaModule) toGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LFunction:
		return m.deferred(v)
	case *lua.LTable:
		if n := v.Len(); n > 0 && tableLen(v) == n {
			seq := make([]any, n)
			for i := 1; i <= n; i++ {
				seq[i-1] = m.toGo(v.RawGetInt(i))
			}
			return seq
		}
		out := configtree.NewMap()
		v.ForEach(func(k, item lua.LValue) {
			out.Set(luaKey(k), m.toGo(item))
		})
		return out
	default:
		return nil
	}
}

// tableLen counts all entries, array and hash part alike.
func tableLen(t *lua.LTable) int {
	n := 0
	t.ForEach(func(_, _ lua.LValue) { n++ })
	return n
}

func luaKey(k lua.LValue) string {
	switch kv := k.(type) {
	case lua.LString:
		return string(kv)
	case lua.LNumber:
		f := float64(kv)
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	default:
		return k.String()
	}
}

// deferred wraps a Lua function as a value resolved against the final
// theme. The function receives a context table whose theme(path,
// default) accessor reads the namespace as resolved so far. Evaluation
// failures yield nil, which the resolver treats as a skipped leaf.
func (m *luaModule) deferred(fn *lua.LFunction) configtree.Deferred {
	return func(theme configtree.Getter) any {
		m.mu.Lock()
		defer m.mu.Unlock()

		ctx := m.L.NewTable()
		m.L.SetField(ctx, "theme", m.L.NewFunction(func(L *lua.LState) int {
			path := L.CheckString(1)
			if v, ok := theme.Get(path); ok {
				L.Push(m.toLua(v))
				return 1
			}
			if L.GetTop() >= 2 {
				L.Push(L.Get(2))
			} else {
				L.Push(lua.LNil)
			}
			return 1
		}))

		m.L.Push(fn)
		m.L.Push(ctx)
		if err := m.L.PCall(1, 1, nil); err != nil {
			return nil
		}
		ret := m.L.Get(-1)
		m.L.Pop(1)
		return m.toGo(ret)
	}
}

// toLua converts a config value for handing back into the interpreter.
func (m *luaModule) toLua(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := m.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, m.toLua(item))
		}
		return t
	case *configtree.Map:
		t := m.L.NewTable()
		val.ForEach(func(k string, item any) bool {
			t.RawSetString(k, m.toLua(item))
			return true
		})
		return t
	case configtree.Tuple:
		t := m.L.NewTable()
		t.RawSetInt(1, m.toLua(val.Primary))
		t.RawSetInt(2, m.toLua(val.Companions))
		return t
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// apiTable builds the capability table handed to a Lua plugin handler.
// The Go callbacks run on the handler's goroutine while the handler
// holds the module lock, so they never relock.
func (m *luaModule) apiTable(api plugin.API) *lua.LTable {
	t := m.L.NewTable()

	m.L.SetField(t, "theme", m.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		var v any
		if L.GetTop() >= 2 {
			v = api.Theme(path, m.toGo(L.Get(2)))
		} else {
			v = api.Theme(path)
		}
		L.Push(m.toLua(v))
		return 1
	}))

	m.L.SetField(t, "config", m.L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		var v any
		if L.GetTop() >= 2 {
			v = api.Config(path, m.toGo(L.Get(2)))
		} else {
			v = api.Config(path)
		}
		L.Push(m.toLua(v))
		return 1
	}))

	m.L.SetField(t, "addUtilities", m.L.NewFunction(func(L *lua.LState) int {
		utilities := L.CheckTable(1)
		if utils, ok := m.toGo(utilities).(*configtree.Map); ok {
			api.AddUtilities(utils)
		}
		return 0
	}))

	m.L.SetField(t, "matchUtilities", m.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		var opts *plugin.MatchOptions
		if L.GetTop() >= 3 {
			if optTable, ok := L.Get(3).(*lua.LTable); ok {
				opts = &plugin.MatchOptions{}
				if values, ok := m.toGo(optTable.RawGetString("values")).(*configtree.Map); ok {
					opts.Values = values
				}
				if typ, ok := optTable.RawGetString("type").(lua.LString); ok {
					opts.Type = string(typ)
				}
			}
		}
		api.MatchUtilities(name, m.generator(fn), opts)
		return 0
	}))

	m.L.SetField(t, "addVariant", m.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		switch wrapper := L.Get(2).(type) {
		case lua.LString:
			api.AddVariant(name, string(wrapper))
		case *lua.LTable:
			api.AddVariant(name, m.toGo(wrapper))
		case *lua.LFunction:
			api.AddVariant(name, m.wrapper(wrapper))
		}
		return 0
	}))

	m.L.SetField(t, "extendTheme", m.L.NewFunction(func(L *lua.LState) int {
		extension := L.CheckTable(1)
		if ext, ok := m.toGo(extension).(*configtree.Map); ok {
			api.ExtendTheme(ext)
		}
		return 0
	}))

	return t
}

// generator wraps a Lua value generator for dynamic utilities. It runs
// during candidate expansion, after plugin execution has released the
// module lock.
func (m *luaModule) generator(fn *lua.LFunction) plugin.Generator {
	return func(value string) *configtree.Map {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.L.Push(fn)
		m.L.Push(lua.LString(value))
		if err := m.L.PCall(1, 1, nil); err != nil {
			return nil
		}
		ret := m.L.Get(-1)
		m.L.Pop(1)
		decls, _ := m.toGo(ret).(*configtree.Map)
		return decls
	}
}

// wrapper wraps a Lua selector function as a variant wrapper.
func (m *luaModule) wrapper(fn *lua.LFunction) func(string) string {
	return func(inner string) string {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.L.Push(fn)
		m.L.Push(lua.LString(inner))
		if err := m.L.PCall(1, 1, nil); err != nil {
			return inner
		}
		ret := m.L.Get(-1)
		m.L.Pop(1)
		if s, ok := ret.(lua.LString); ok {
			return string(s)
		}
		return inner
	}
}
