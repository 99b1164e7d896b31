package indent

import (
	"strings"

	"github.com/layoutkit/offside/internal/engine/buffer"
)

// AlignGuardsAndRHS pads the guard markers and right-hand-side markers
// of the clauses in [startLine, endLine] to a common column: the
// configured RHSAlignColumn when nonzero, the rightmost marker in the
// range otherwise. Lines without a marker are left alone.
func (e *Engine) AlignGuardsAndRHS(startLine, endLine int) error {
	if startLine < 0 || endLine >= e.buf.LineCount() || startLine > endLine {
		return buffer.ErrRangeInvalid
	}

	type markPos struct {
		line int
		off  buffer.Offset
	}
	var marks []markPos

	for line := startLine; line <= endLine; line++ {
		if !e.isCodeLine(line) || e.isBlankLine(line) || e.lineIsComment(line) {
			continue
		}
		from := e.indentOffset(line)
		parts := e.segmentClause(from, e.buf.LineEnd(line))

		mark := parts.guard
		if mark == buffer.NoOffset {
			mark = parts.rhsMark
		}
		if mark == buffer.NoOffset {
			continue
		}
		marks = append(marks, markPos{line: line, off: mark})
	}
	if len(marks) == 0 {
		return nil
	}

	target := e.cfg.RHSAlignColumn
	if target == 0 {
		for _, m := range marks {
			if col := e.buf.OffsetToPoint(m.off).Column; col > target {
				target = col
			}
		}
	}

	// Apply bottom-up so offsets of unprocessed lines stay valid.
	for i := len(marks) - 1; i >= 0; i-- {
		m := marks[i]
		col := e.buf.OffsetToPoint(m.off).Column
		if col >= target {
			continue
		}
		if _, err := e.buf.Insert(m.off, strings.Repeat(" ", target-col)); err != nil {
			return err
		}
	}
	e.ResetCycle()
	return nil
}
