package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// Candidate is one plausible indentation for the current line. Insert,
// when non-empty, is literal text placed after the indentation (for
// example "| " to begin the next guard).
type Candidate struct {
	Column int
	Insert string
}

// Result is the outcome of one indentation request: the ordered
// candidate list plus any non-fatal diagnostics gathered while scanning.
type Result struct {
	Candidates  []Candidate
	Diagnostics []Diagnostic
}

// indentInfo accumulates candidates in insertion order, dropping exact
// duplicates, together with any diagnostics produced while scanning.
type indentInfo struct {
	cands []Candidate
	diags []Diagnostic
}

// push records a candidate unless an identical one is already present.
func (ii *indentInfo) push(col int, insert string) {
	if col < 0 {
		col = 0
	}
	for _, c := range ii.cands {
		if c.Column == col && c.Insert == insert {
			return
		}
	}
	ii.cands = append(ii.cands, Candidate{Column: col, Insert: insert})
}

// pushPos records the column of a buffer position.
func (e *Engine) pushPos(ii *indentInfo, off buffer.Offset, insert string) {
	if off == buffer.NoOffset {
		return
	}
	ii.push(e.buf.OffsetToPoint(off).Column, insert)
}

// pushPosOffset records the column of a position plus the indent step.
func (e *Engine) pushPosOffset(ii *indentInfo, off buffer.Offset) {
	if off == buffer.NoOffset {
		return
	}
	ii.push(e.buf.OffsetToPoint(off).Column+e.cfg.IndentStep, "")
}
