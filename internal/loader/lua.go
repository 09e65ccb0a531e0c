package loader

import (
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// LuaLoader runs executable Lua configs in a restricted interpreter.
// The script's final expression is its config table; a script may also
// produce a bare plugin function or a plugin descriptor table.
//
// Each loaded module keeps its interpreter alive: deferred theme values
// and plugin handlers captured from the script call back into it later
// in the compile.
type LuaLoader struct{}

// NewLuaLoader creates a Lua config loader.
func NewLuaLoader() *LuaLoader {
	return &LuaLoader{}
}

// Load executes the Lua config at path and converts its result.
func (l *LuaLoader) Load(path string) (*Result, error) {
	L := lua.NewState()
	restrict(L)

	mod := &luaModule{L: L}
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	base := filepath.Dir(path)
	switch v := ret.(type) {
	case *lua.LTable:
		if fn, ok := v.RawGetString("handler").(*lua.LFunction); ok {
			return &Result{Value: mod.toPlugin(moduleName(path, v), fn, v), Base: base}, nil
		}
		return &Result{Value: mod.toConfig(v), Base: base}, nil
	case *lua.LFunction:
		return &Result{Value: mod.toPlugin(filepath.Base(path), v, nil), Base: base}, nil
	default:
		L.Close()
		return nil, ErrNotConfig
	}
}

// moduleName picks a plugin name for a descriptor table, preferring an
// explicit "name" field over the file name.
func moduleName(path string, t *lua.LTable) string {
	if s, ok := t.RawGetString("name").(lua.LString); ok && s != "" {
		return string(s)
	}
	return filepath.Base(path)
}

// restrict strips the interpreter down to pure computation. Configs
// have no business touching the filesystem, the process environment,
// or arbitrary module loading.
func restrict(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("os", lua.LNil)

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	safeModules := map[string]bool{
		"string": true,
		"table":  true,
		"math":   true,
	}
	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
