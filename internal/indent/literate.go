package indent

import (
	"strings"

	"github.com/layoutkit/offside/internal/config"
	"github.com/layoutkit/offside/internal/engine/buffer"
)

// Bird-track marker and LaTeX-style code fences.
const (
	birdMarker = '>'
	latexBegin = `\begin{code}`
	latexEnd   = `\end{code}`
)

// isCodeLine reports whether a line participates in indentation. In a
// plain buffer every line is code; in literate buffers prose lines are
// excluded.
func (e *Engine) isCodeLine(line int) bool {
	switch e.cfg.LiterateMode {
	case config.LiterateBird:
		text := e.buf.LineText(line)
		return len(text) > 0 && text[0] == birdMarker
	case config.LiterateLatex:
		return e.insideLatexCode(line)
	default:
		return true
	}
}

// insideLatexCode reports whether the line sits between \begin{code} and
// \end{code}. The fence lines themselves are prose.
func (e *Engine) insideLatexCode(line int) bool {
	for l := line; l >= 0; l-- {
		text := strings.TrimRight(e.buf.LineText(l), " \t")
		if text == latexEnd {
			return false
		}
		if text == latexBegin {
			return l != line
		}
	}
	return false
}

// codeStart returns the offset of the first code byte on a line: past
// the Bird marker in Bird mode, the line start otherwise. For prose
// lines it returns the line end so the line scans as empty.
func (e *Engine) codeStart(line int) buffer.Offset {
	if !e.isCodeLine(line) {
		return e.buf.LineEnd(line)
	}
	start := e.buf.LineStart(line)
	if e.cfg.LiterateMode == config.LiterateBird {
		return start + 1
	}
	return start
}

// isBlankLine reports whether a line holds no code: blank, prose, or a
// bare Bird marker followed only by blanks.
func (e *Engine) isBlankLine(line int) bool {
	text := e.buf.Slice(e.codeStart(line), e.buf.LineEnd(line))
	return strings.TrimLeft(text, " \t") == ""
}

// lineIndent returns the buffer column of the first non-blank code byte
// on the line, or -1 for blank lines.
func (e *Engine) lineIndent(line int) int {
	off := e.indentOffset(line)
	if off == buffer.NoOffset {
		return -1
	}
	return e.buf.OffsetToPoint(off).Column
}

// indentOffset returns the offset of the first non-blank code byte on
// the line, or NoOffset for blank lines.
func (e *Engine) indentOffset(line int) buffer.Offset {
	start := e.codeStart(line)
	end := e.buf.LineEnd(line)
	for off := start; off < end; off++ {
		if ch, _ := e.buf.ByteAt(off); ch != ' ' && ch != '\t' {
			return off
		}
	}
	return buffer.NoOffset
}

// minColumn returns the lowest column code may be indented to: zero in
// plain buffers, one past the marker run in Bird buffers.
func (e *Engine) minColumn() int {
	if e.cfg.LiterateMode == config.LiterateBird {
		return e.cfg.BirdDefaultOffset + 1
	}
	return 0
}

// indentString renders the leading text that places content at the given
// column, re-inserting the Bird marker when required.
func (e *Engine) indentString(col int) string {
	if e.cfg.LiterateMode == config.LiterateBird {
		if col < e.minColumn() {
			col = e.minColumn()
		}
		return string(birdMarker) + strings.Repeat(" ", col-1)
	}
	if col < 0 {
		col = 0
	}
	return strings.Repeat(" ", col)
}

// setLineIndentation replaces the line's leading whitespace so its first
// code byte lands at the given column, preserving the literate marker.
// It returns the offset where line content now begins.
func (e *Engine) setLineIndentation(line, col int) (buffer.Offset, error) {
	lineStart := e.buf.LineStart(line)
	contentStart := e.indentOffset(line)
	if contentStart == buffer.NoOffset {
		contentStart = e.buf.LineEnd(line)
	}
	return e.buf.Replace(lineStart, contentStart, e.indentString(col))
}
