package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// maxResolveDepth caps recursion into nested bracket interiors. Deeper
// nesting fails with ErrTooDeep instead of exhausting the stack.
const maxResolveDepth = 64

// insideBracket computes candidates for a line inside an unclosed
// bracket. Alignment follows the opener: the column of the content after
// it when any is on the same line, otherwise the opener's virtual
// indentation. The interior is then re-analyzed as its own layout block
// and the results spliced in.
func (e *Engine) insideBracket(open openDelim, indentPoint buffer.Offset, lt LineType, curTok token, depth int, info *indentInfo) error {
	if depth >= maxResolveDepth {
		return ErrTooDeep
	}

	openLine := e.buf.LineAt(open.off)
	openCol := e.buf.OffsetToPoint(open.off).Column

	// A line starting with the matching closer aligns under the opener.
	if lt == LineOther && len(curTok.text) > 0 && curTok.text[0] == closerFor(open.ch) {
		info.push(openCol, "")
	}

	lineEnd := e.buf.LineEnd(openLine)
	content, hasContent := e.nextToken(open.off+1, lineEnd)

	if hasContent {
		// Content follows the opener: align under it.
		e.pushPos(info, content.start, "")
	} else {
		// Hanging opener. Braces take the configured hanging offset from
		// the opening line's indentation; parens and brackets are exempt
		// and align at the opener's virtual indentation.
		if open.ch == '{' {
			ko := e.cfg.KeywordOffsetFor("{")
			info.push(e.lineIndent(openLine)+ko.HangingOffset, "")
		} else {
			col, err := e.virtualIndentation(open.off, depth+1)
			if err != nil {
				return err
			}
			info.push(col, "")
		}
	}

	// Re-run the layout machinery on the bracket interior. Duplicates of
	// the opener-column entry collapse in the accumulator.
	interiorStart := open.off + 1
	if e.skipBlanksBackward(interiorStart, indentPoint) != buffer.NoOffset {
		if err := e.indentationInfo(interiorStart, indentPoint, lt, curTok, depth+1, info); err != nil {
			return err
		}
	}
	return nil
}

// virtualIndentation returns the column a token would occupy if it
// started its own line: its actual column when it already does, the
// first indentation candidate computed at its position otherwise.
func (e *Engine) virtualIndentation(off buffer.Offset, depth int) (int, error) {
	if depth >= maxResolveDepth {
		return 0, ErrTooDeep
	}

	line := e.buf.LineAt(off)
	col := e.buf.OffsetToPoint(off).Column
	if e.indentOffset(line) == off {
		return col, nil
	}

	defStart := e.startOfDef(off)
	var info indentInfo
	if err := e.indentationInfo(defStart, off, LineEmpty, token{}, depth, &info); err != nil {
		return col, nil // fall back to the literal column
	}
	if len(info.cands) == 0 {
		return col, nil
	}
	return info.cands[0].Column, nil
}
