package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// closeKeywords maps each closing keyword to its opener.
var closeKeywords = map[string]string{
	"in":   "let",
	"of":   "case",
	"then": "if",
	"else": "if",
}

// blockKeywords introduce a layout block; a line following one of them
// indents by the keyword's configured offset.
var blockKeywords = map[string]bool{
	"do":    true,
	"where": true,
	"of":    true,
	"let":   true,
	"then":  true,
	"else":  true,
	"{":     true,
}

// closeKeywordIndentation aligns a line starting with in/of/then/else to
// its matching opener. The search is nesting-aware and skips let blocks
// already closed by layout. Returns false when no opener is found before
// the definition start; the caller falls back to layout indentation.
func (e *Engine) closeKeywordIndentation(defStart, lineStart buffer.Offset, kw string, info *indentInfo) bool {
	opener := closeKeywords[kw]
	toks := e.tokensBetween(defStart, lineStart)

	depth := 0
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i]
		if t.kind != tokIdent {
			continue
		}
		switch t.text {
		case kw:
			depth++
		case opener:
			if opener == "let" && e.letClosedByLayout(toks, i, lineStart) {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			col := e.buf.OffsetToPoint(t.start).Column
			if kw == "then" || kw == "else" {
				col += e.cfg.ThenElseOffset
			}
			info.push(col, "")
			return true
		}
	}
	return false
}

// letClosedByLayout reports whether the let at token index i is closed
// by layout rather than by an `in`: a line indented left of the binding
// block appearing before any `in` at the same nesting ends the block.
// The line being indented does not count as a boundary.
func (e *Engine) letClosedByLayout(toks []token, i int, end buffer.Offset) bool {
	if i+1 >= len(toks) {
		return true // let with no bindings at all
	}
	blockCol := e.buf.OffsetToPoint(toks[i+1].start).Column

	// Find where a shallower-indented line first appears after the let.
	boundary := buffer.NoOffset
	letLine := e.buf.LineAt(toks[i].start)
	for line := letLine + 1; line < e.buf.LineAt(end); line++ {
		col := e.lineIndent(line)
		if col < 0 {
			continue
		}
		if col < blockCol {
			boundary = e.buf.LineStart(line)
			break
		}
	}
	if boundary == buffer.NoOffset {
		return false // binding block still open
	}

	// An `in` before the boundary, not consumed by a nested let, closes
	// this let explicitly.
	depth := 0
	for j := i + 1; j < len(toks) && toks[j].start < boundary; j++ {
		if toks[j].kind != tokIdent {
			continue
		}
		switch toks[j].text {
		case "let":
			depth++
		case "in":
			if depth > 0 {
				depth--
			} else {
				return false
			}
		}
	}
	return true
}

// afterKeywordIndentation pushes the candidates implied by a
// block-introducing keyword on the previous non-blank code line.
// Returns true when such a keyword was found.
func (e *Engine) afterKeywordIndentation(defStart buffer.Offset, line int, info *indentInfo) bool {
	prev := e.prevCodeLine(line)
	if prev < 0 {
		return false
	}
	from := e.indentOffset(prev)
	if from == buffer.NoOffset || from < defStart {
		return false
	}
	toks := e.tokensBetween(from, e.buf.LineEnd(prev))
	if len(toks) == 0 {
		return false
	}

	// Use the last block keyword on the line.
	kwIdx := -1
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].kind == tokIdent && blockKeywords[toks[i].text] {
			kwIdx = i
			break
		}
	}
	if kwIdx < 0 {
		return false
	}

	kw := toks[kwIdx]
	ko := e.cfg.KeywordOffsetFor(kw.text)
	kwCol := e.buf.OffsetToPoint(kw.start).Column

	if kwIdx+1 < len(toks) {
		// Content follows the keyword: align the block under it.
		e.pushPos(info, toks[kwIdx+1].start, "")
		return true
	}

	if kwIdx == 0 {
		// Keyword alone on its line.
		info.push(kwCol+ko.Offset, "")
		return true
	}

	// Hanging keyword: offset from the line's indentation, not from the
	// keyword's own column.
	info.push(e.lineIndent(prev)+ko.HangingOffset, "")
	return true
}

// prevCodeLine returns the nearest preceding non-blank code line, or -1.
func (e *Engine) prevCodeLine(line int) int {
	for l := line - 1; l >= 0; l-- {
		if e.isCodeLine(l) && !e.isBlankLine(l) && !e.lineIsComment(l) {
			return l
		}
	}
	return -1
}
