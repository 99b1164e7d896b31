// Package lua embeds a Lua interpreter that scripts the indentation
// engine.
//
// A Host exposes one module, `offside`, to user scripts:
//
//	local c = offside.candidates(line, col)  -- candidate list
//	offside.cycle(line, col)                 -- apply next candidate
//	offside.apply(line, col, index)          -- apply one candidate
//	offside.text()                           -- buffer contents
//	offside.config()                         -- engine configuration
//
// Lines and columns are 0-indexed on the Go side and passed through
// unchanged. The host owns the Lua state; Close releases it.
package lua
