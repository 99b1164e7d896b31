package indent

import (
	"github.com/layoutkit/offside/internal/config"
	"github.com/layoutkit/offside/internal/engine/buffer"
)

// traceContour walks backward from end toward start, collecting the
// start of every non-blank, non-comment line whose indentation is
// strictly below the minimum seen so far. The result is ordered
// outermost first. The scan stops at start, the buffer beginning, a
// literate prose line, or (when LookPastEmptyLines is off) a blank line.
func (e *Engine) traceContour(start, end buffer.Offset) []buffer.Offset {
	if start >= end {
		return nil
	}

	last := e.skipBlanksBackward(start, end)
	if last == buffer.NoOffset {
		return nil
	}

	// The column just past the last code byte is the initial minimum, so
	// the line holding that byte always qualifies.
	minCol := e.buf.OffsetToPoint(last).Column + 1
	line := e.buf.LineAt(last)

	var contour []buffer.Offset
	for minCol > 0 && line >= 0 {
		switch {
		// Prose before blank: a prose line also scans as blank, and must
		// bound the trace even when blank lines are looked past.
		case !e.isCodeLine(line) && e.cfg.LiterateMode != config.LiterateNone:
			return contour // literate code boundary

		case e.isBlankLine(line):
			if !e.cfg.LookPastEmptyLines {
				return contour
			}

		case e.lineIsComment(line):
			// skipped, comments never bound layout

		default:
			indentOff := e.indentOffset(line)
			if indentOff < start {
				indentOff = start
			}
			col := e.buf.OffsetToPoint(indentOff).Column
			if col < minCol {
				contour = append([]buffer.Offset{indentOff}, contour...)
				minCol = col
			}
		}

		if e.buf.LineStart(line) <= start {
			return contour
		}
		line--
	}
	return contour
}

// lineIsComment reports whether the line starts a comment or sits inside
// one opened on an earlier line.
func (e *Engine) lineIsComment(line int) bool {
	lt, _ := e.classifyLine(line)
	return lt == LineComment
}

// skipBlanksBackward returns the offset of the last code byte before
// end that is not trailing whitespace, bounded below by start. Returns
// NoOffset when no code exists in the span.
func (e *Engine) skipBlanksBackward(start, end buffer.Offset) buffer.Offset {
	line := e.buf.LineAt(end)
	if end <= e.buf.LineStart(line) && line > 0 {
		line--
	}
	text := e.buf.Text()
	for ; line >= 0; line-- {
		if e.buf.LineEnd(line) < start {
			return buffer.NoOffset
		}
		if !e.isCodeLine(line) || e.isBlankLine(line) {
			continue
		}
		limit := e.buf.LineEnd(line)
		if limit > end {
			limit = end
		}
		for off := limit - 1; off >= e.codeStart(line) && off >= start; off-- {
			ch := text[off]
			if ch != ' ' && ch != '\t' {
				return off
			}
		}
	}
	return buffer.NoOffset
}
