package lua

import lua "github.com/yuin/gopher-lua"

// unsafeGlobals load code from files or strings and would escape the
// require whitelist.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// closedLibraries are never opened; their globals are placeholders that
// fail on first use.
var closedLibraries = []string{"io", "os", "debug"}

// installSandbox replaces unsafe globals with functions that raise a clear
// error and restricts require to modules that are already loaded or
// preloaded by the host.
func installSandbox(L *lua.LState) {
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, L.NewFunction(unavailable(name)))
	}
	for _, name := range closedLibraries {
		lib, meta := L.NewTable(), L.NewTable()
		L.SetField(meta, "__index", L.NewFunction(unavailable(name)))
		L.SetMetatable(lib, meta)
		L.SetGlobal(name, lib)
	}

	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))

	require := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !available(L, pkg, name) {
			L.RaiseError("module %q is not available in plugins", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

func available(L *lua.LState, pkg *lua.LTable, name string) bool {
	for _, field := range []string{"loaded", "preload"} {
		if t, ok := L.GetField(pkg, field).(*lua.LTable); ok && t.RawGetString(name) != lua.LNil {
			return true
		}
	}
	return false
}

func unavailable(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		L.RaiseError("%s is not available in plugins", name)
		return 0
	}
}
