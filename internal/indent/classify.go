package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// LineType is the syntactic class of the line being indented, decided by
// its first token.
type LineType int

const (
	LineEmpty LineType = iota
	LineComment
	LineIdent
	LineGuard
	LineRHS
	LineOther
)

// String returns the class name.
func (lt LineType) String() string {
	switch lt {
	case LineEmpty:
		return "empty"
	case LineComment:
		return "comment"
	case LineIdent:
		return "ident"
	case LineGuard:
		return "guard"
	case LineRHS:
		return "rhs"
	default:
		return "other"
	}
}

// classifyLine classifies a line by its leading token and returns the
// offset just past the matched token, used by subsequent scanning. A
// line whose first token opens a comment classifies as comment.
func (e *Engine) classifyLine(line int) (LineType, buffer.Offset) {
	off := e.indentOffset(line)
	if off == buffer.NoOffset {
		return LineEmpty, e.buf.LineEnd(line)
	}

	lineEnd := e.buf.LineEnd(line)
	text := e.buf.Text()
	if isLineCommentStart(text, int(off), int(lineEnd)) ||
		(text[off] == '{' && int(off)+1 < int(lineEnd) && text[off+1] == '-') {
		return LineComment, lineEnd
	}

	tok, ok := e.nextToken(off, lineEnd)
	if !ok {
		return LineEmpty, lineEnd
	}

	switch {
	case tok.kind == tokIdent:
		return LineIdent, tok.end
	case tok.isGuardMark():
		return LineGuard, tok.end
	case tok.isRHSMark():
		return LineRHS, tok.end
	default:
		return LineOther, tok.end
	}
}

// leadingToken returns the first token of a line, if any.
func (e *Engine) leadingToken(line int) (token, bool) {
	off := e.indentOffset(line)
	if off == buffer.NoOffset {
		return token{}, false
	}
	return e.nextToken(off, e.buf.LineEnd(line))
}
