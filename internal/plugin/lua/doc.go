// Package lua runs user scripts that drive the editor.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are open, dofile/loadfile/load are removed, and
// require only resolves preloaded modules. Every call runs under a
// timeout.
//
// The listedit module is available both as a global and through
// require("listedit"):
//
//	local le = require("listedit")
//	le.enable()
//	le.bind("ctrl+l", "listedit.toggle")
//	if le.enabled() then
//	    le.insert("- first")
//	    le.extend()
//	end
package lua
