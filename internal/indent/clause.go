package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// clauseParts are the logical pieces of one value or type definition.
// Every offset is NoOffset when the part does not occur in the scanned
// span; absence is meaningful, not an error.
type clauseParts struct {
	name       buffer.Offset
	nameText   string
	afterName  buffer.Offset
	guard      buffer.Offset
	afterGuard buffer.Offset
	rhsMark    buffer.Offset
	rhsText    string
	afterRhs   buffer.Offset
}

func emptyClauseParts() clauseParts {
	return clauseParts{
		name:       buffer.NoOffset,
		afterName:  buffer.NoOffset,
		guard:      buffer.NoOffset,
		afterGuard: buffer.NoOffset,
		rhsMark:    buffer.NoOffset,
		afterRhs:   buffer.NoOffset,
	}
}

// segmentClause scans [start, end) and splits it into clause parts. The
// first token is the definition name; a guard marker switches collection
// to the guard side; an assignment/arrow marker switches to the
// right-hand side. Bracketed groups are consumed atomically. Running off
// the buffer stops the scan silently with whatever was collected.
func (e *Engine) segmentClause(start, end buffer.Offset) clauseParts {
	parts := emptyClauseParts()

	tok, ok := e.nextToken(start, end)
	if !ok {
		return parts
	}
	parts.name = tok.start
	parts.nameText = tok.text

	// mode tracks which side of the clause tokens land on.
	const (
		afterNameMode = iota
		afterGuardMode
		afterRhsMode
	)
	mode := afterNameMode

	off := tok.end
	for {
		tok, ok = e.nextToken(off, end)
		if !ok {
			return parts
		}
		off = tok.end

		switch {
		case tok.isGuardMark() && mode == afterNameMode:
			parts.guard = tok.start
			mode = afterGuardMode

		case tok.isRHSMark() && mode != afterRhsMode:
			parts.rhsMark = tok.start
			parts.rhsText = tok.text
			mode = afterRhsMode

		default:
			switch mode {
			case afterNameMode:
				if parts.afterName == buffer.NoOffset {
					parts.afterName = tok.start
				}
			case afterGuardMode:
				if parts.afterGuard == buffer.NoOffset {
					parts.afterGuard = tok.start
				}
			case afterRhsMode:
				if parts.afterRhs == buffer.NoOffset {
					parts.afterRhs = tok.start
				}
			}
		}
	}
}

// findTokenText returns the start of the first token in [start, end)
// whose text matches, or NoOffset.
func (e *Engine) findTokenText(start, end buffer.Offset, text string) buffer.Offset {
	off := start
	for {
		tok, ok := e.nextToken(off, end)
		if !ok {
			return buffer.NoOffset
		}
		if tok.text == text {
			return tok.start
		}
		off = tok.end
	}
}
