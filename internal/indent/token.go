package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// tokenKind classifies one scanned symbol.
type tokenKind int

const (
	tokIdent tokenKind = iota
	tokOperator
	tokGroup  // balanced bracketed group, consumed atomically
	tokString // string or character literal
	tokOther
)

// token is one symbol produced by the forward scan. Bracketed groups,
// strings, and character literals are single tokens.
type token struct {
	text  string
	start buffer.Offset
	end   buffer.Offset
	kind  tokenKind
}

// isGuardMark reports a guard marker: | that is not part of ||.
func (t token) isGuardMark() bool {
	return t.kind == tokOperator && t.text == "|"
}

// rhsMarks are the assignment, type, and arrow markers that introduce a
// right-hand side.
var rhsMarks = map[string]bool{
	"=":  true,
	"::": true,
	"∷":  true,
	"->": true,
	"→":  true,
	"<-": true,
	"←":  true,
}

// isRHSMark reports an assignment/type/arrow marker. Longer operator
// runs such as == or ->> never match; the scan consumes maximal runs.
func (t token) isRHSMark() bool {
	return t.kind == tokOperator && rhsMarks[t.text]
}

// nextToken returns the first token at or after off, staying below
// limit. Whitespace, comments, and literate prose are skipped. The
// second return is false when no token fits before the limit, including
// when a bracketed group is unterminated; scanning then stops silently.
func (e *Engine) nextToken(off, limit buffer.Offset) (token, bool) {
	if limit > e.buf.Len() {
		limit = e.buf.Len()
	}
	text := e.buf.Text()

	for off < limit {
		line := e.buf.LineAt(off)
		if cs := e.codeStart(line); off < cs {
			off = cs
			continue
		}
		lineEnd := e.buf.LineEnd(line)
		if off >= lineEnd {
			off = lineEnd + 1
			continue
		}

		ch := text[off]
		switch {
		case ch == ' ' || ch == '\t':
			off++

		case ch == '{' && off+1 < limit && text[off+1] == '-':
			end, ok := e.skipBlockComment(off, limit)
			if !ok {
				return token{}, false
			}
			off = end

		case isLineCommentStart(text, int(off), int(lineEnd)):
			off = lineEnd + 1

		case isOpenBracket(ch):
			end, ok := e.skipGroup(off, limit)
			if !ok {
				return token{}, false
			}
			return token{text: text[off:end], start: off, end: end, kind: tokGroup}, true

		case ch == '"':
			end, ok := e.skipString(off, limit)
			if !ok {
				return token{}, false
			}
			return token{text: text[off:end], start: off, end: end, kind: tokString}, true

		case ch == '\'' && isCharLiteral(text, int(off), int(limit)):
			end, ok := e.skipCharLiteral(off, limit)
			if !ok {
				return token{}, false
			}
			return token{text: text[off:end], start: off, end: end, kind: tokString}, true

		case isIdentStart(ch):
			end := off + 1
			for end < limit && end < lineEnd && isIdentByte(text[end]) {
				end++
			}
			return token{text: text[off:end], start: off, end: end, kind: tokIdent}, true

		case isOperatorByte(ch):
			end := off + 1
			for end < limit && end < lineEnd && isOperatorByte(text[end]) {
				end++
			}
			return token{text: text[off:end], start: off, end: end, kind: tokOperator}, true

		default:
			r, size := e.buf.RuneAt(off)
			end := off + buffer.Offset(size)
			kind := tokOther
			if r == '∷' || r == '→' || r == '←' {
				kind = tokOperator
			}
			return token{text: text[off:end], start: off, end: end, kind: kind}, true
		}
	}
	return token{}, false
}

// skipGroup advances past a balanced bracketed group. Strings and
// comments inside the group are respected. Returns false when the group
// is not closed before the limit.
func (e *Engine) skipGroup(off, limit buffer.Offset) (buffer.Offset, bool) {
	text := e.buf.Text()
	depth := 0
	i := off
	for i < limit {
		line := e.buf.LineAt(i)
		if cs := e.codeStart(line); i < cs {
			i = cs
			continue
		}
		lineEnd := e.buf.LineEnd(line)
		if i >= lineEnd {
			i = lineEnd + 1
			continue
		}

		ch := text[i]
		switch {
		case ch == '"':
			end, ok := e.skipString(i, limit)
			if !ok {
				return 0, false
			}
			i = end
		case ch == '\'' && isCharLiteral(text, int(i), int(limit)):
			end, ok := e.skipCharLiteral(i, limit)
			if !ok {
				return 0, false
			}
			i = end
		case ch == '{' && i+1 < limit && text[i+1] == '-':
			end, ok := e.skipBlockComment(i, limit)
			if !ok {
				return 0, false
			}
			i = end
		case isLineCommentStart(text, int(i), int(lineEnd)):
			i = lineEnd + 1
		case isOpenBracket(ch):
			depth++
			i++
		case isCloseBracket(ch):
			depth--
			i++
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// skipString advances past a string literal, honoring backslash escapes.
func (e *Engine) skipString(off, limit buffer.Offset) (buffer.Offset, bool) {
	text := e.buf.Text()
	i := off + 1
	for i < limit {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, true
		default:
			i++
		}
	}
	return 0, false
}

// skipCharLiteral advances past a character literal.
func (e *Engine) skipCharLiteral(off, limit buffer.Offset) (buffer.Offset, bool) {
	text := e.buf.Text()
	i := off + 1
	for i < limit {
		switch text[i] {
		case '\\':
			i += 2
		case '\'':
			return i + 1, true
		default:
			i++
		}
	}
	return 0, false
}

// skipBlockComment advances past a nested block comment.
func (e *Engine) skipBlockComment(off, limit buffer.Offset) (buffer.Offset, bool) {
	text := e.buf.Text()
	depth := 0
	i := off
	for i < limit {
		if text[i] == '{' && i+1 < limit && text[i+1] == '-' {
			depth++
			i += 2
			continue
		}
		if text[i] == '-' && i+1 < limit && text[i+1] == '}' {
			depth--
			i += 2
			if depth == 0 {
				return i, true
			}
			continue
		}
		i++
	}
	return 0, false
}

// tokensBetween collects every token in [start, end) in order. Scanning
// stops silently at an unterminated group or the region end.
func (e *Engine) tokensBetween(start, end buffer.Offset) []token {
	var toks []token
	off := start
	for {
		tok, ok := e.nextToken(off, end)
		if !ok {
			return toks
		}
		toks = append(toks, tok)
		off = tok.end
	}
}
