package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/layoutkit/offside/internal/engine/buffer"
	"github.com/layoutkit/offside/internal/indent"
)

// Host owns a Lua state with the offside module preloaded.
type Host struct {
	L      *lua.LState
	engine *indent.Engine
}

// NewHost creates a Lua host bound to the engine.
func NewHost(engine *indent.Engine) *Host {
	h := &Host{
		L:      lua.NewState(),
		engine: engine,
	}
	h.L.PreloadModule("offside", h.loader)
	return h
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.L.Close()
}

// DoString runs a Lua chunk.
func (h *Host) DoString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// DoFile runs a Lua script from disk.
func (h *Host) DoFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// loader builds the offside module table.
func (h *Host) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"candidates": h.luaCandidates,
		"cycle":      h.luaCycle,
		"apply":      h.luaApply,
		"text":       h.luaText,
		"config":     h.luaConfig,
	})
	L.Push(mod)
	return 1
}

// offsetArg converts (line, col) stack arguments to a buffer offset.
func (h *Host) offsetArg(L *lua.LState) buffer.Offset {
	line := L.CheckInt(1)
	col := L.CheckInt(2)
	return h.engine.Buffer().PointToOffset(buffer.Point{Line: line, Column: col})
}

// candidateTable renders one candidate as a Lua table.
func candidateTable(L *lua.LState, c indent.Candidate) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("column", lua.LNumber(c.Column))
	if c.Insert != "" {
		t.RawSetString("insert", lua.LString(c.Insert))
	}
	return t
}

func (h *Host) luaCandidates(L *lua.LState) int {
	res, err := h.engine.ComputeIndentCandidates(h.offsetArg(L))
	if err != nil {
		L.RaiseError("candidates: %v", err)
		return 0
	}
	out := L.NewTable()
	for i, c := range res.Candidates {
		out.RawSetInt(i+1, candidateTable(L, c))
	}
	L.Push(out)
	return 1
}

func (h *Host) luaCycle(L *lua.LState) int {
	cand, err := h.engine.CycleIndent(h.offsetArg(L))
	if err != nil {
		L.RaiseError("cycle: %v", err)
		return 0
	}
	L.Push(candidateTable(L, cand))
	return 1
}

func (h *Host) luaApply(L *lua.LState) int {
	pos := h.offsetArg(L)
	index := L.CheckInt(3)

	res, err := h.engine.ComputeIndentCandidates(pos)
	if err != nil {
		L.RaiseError("apply: %v", err)
		return 0
	}
	// Lua indexes from 1.
	if _, err := h.engine.ApplyCandidate(pos, res.Candidates, index-1); err != nil {
		L.RaiseError("apply: %v", err)
		return 0
	}
	return 0
}

func (h *Host) luaText(L *lua.LState) int {
	L.Push(lua.LString(h.engine.Buffer().Text()))
	return 1
}

func (h *Host) luaConfig(L *lua.LState) int {
	cfg := h.engine.Config()
	t := L.NewTable()
	t.RawSetString("indentStep", lua.LNumber(cfg.IndentStep))
	t.RawSetString("literateMode", lua.LString(cfg.LiterateMode.String()))
	t.RawSetString("birdDefaultOffset", lua.LNumber(cfg.BirdDefaultOffset))
	t.RawSetString("lookPastEmptyLines", lua.LBool(cfg.LookPastEmptyLines))
	t.RawSetString("thenElseOffset", lua.LNumber(cfg.ThenElseOffset))
	t.RawSetString("rhsAlignColumn", lua.LNumber(cfg.RHSAlignColumn))

	offsets := L.NewTable()
	for kw, ko := range cfg.AfterKeywordOffsets {
		entry := L.NewTable()
		entry.RawSetString("offset", lua.LNumber(ko.Offset))
		entry.RawSetString("hangingOffset", lua.LNumber(ko.HangingOffset))
		offsets.RawSetString(kw, entry)
	}
	t.RawSetString("afterKeywordOffsets", offsets)

	L.Push(t)
	return 1
}
