package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// partKind names one clause part, in test-vector bit order.
type partKind int

const (
	partName partKind = iota
	partAfterName
	partGuard
	partAfterGuard
	partRHS
	partAfterRHS
)

// offsetOf returns the recorded position for a part.
func (p clauseParts) offsetOf(k partKind) buffer.Offset {
	switch k {
	case partName:
		return p.name
	case partAfterName:
		return p.afterName
	case partGuard:
		return p.guard
	case partAfterGuard:
		return p.afterGuard
	case partRHS:
		return p.rhsMark
	default:
		return p.afterRhs
	}
}

// action is one candidate push prescribed by a table case.
type action struct {
	part     partKind
	offset   bool   // add the indent step to the part's column
	lastLine bool   // applies only on the innermost contour line
	insert   string // literal text placed after the indentation
}

// Shorthand constructors keep the table readable.
func at(p partKind) action { return action{part: p} }

func step(p partKind) action { return action{part: p, offset: true} }

func lastStep(p partKind) action { return action{part: p, offset: true, lastLine: true} }

func guardText() action { return action{part: partGuard, insert: "| "} }

// tableEntry maps one part-visibility pattern to the candidate pushes
// for each line type that consults the table.
type tableEntry struct {
	pattern string
	empty   []action
	ident   []action
	other   []action
}

// decisionTable is the fixed case table of the engine. Bit order is
// name, afterName, guard, afterGuard, rhsMark, afterRhs; a bit is set
// when the part is present and starts before the visibility boundary.
// Scanning order makes visibility truncate presence left to right, so
// exactly these fourteen patterns can arise; the all-zero vector is kept
// as a reachable error. Entries are matched in order, first match wins.
var decisionTable = []tableEntry{
	{ // name args | guard = rhs
		pattern: "111111",
		empty:   []action{at(partAfterRHS), guardText(), lastStep(partName), at(partName)},
		ident:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		other:   []action{at(partAfterRHS), lastStep(partName)},
	},
	{ // name args | guard =
		pattern: "111110",
		empty:   []action{step(partName), guardText(), at(partName)},
		ident:   []action{step(partName), at(partName)},
		other:   []action{step(partName)},
	},
	{ // name args | guard
		pattern: "111100",
		empty:   []action{at(partAfterGuard), guardText(), at(partName)},
		ident:   []action{at(partAfterGuard), at(partName)},
		other:   []action{at(partAfterGuard)},
	},
	{ // name args |
		pattern: "111000",
		empty:   []action{step(partGuard), at(partName)},
		ident:   []action{at(partName)},
		other:   []action{step(partGuard)},
	},
	{ // name args = rhs
		pattern: "110011",
		empty:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		ident:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		other:   []action{at(partAfterRHS), lastStep(partName)},
	},
	{ // name args =
		pattern: "110010",
		empty:   []action{step(partName), at(partName)},
		ident:   []action{step(partName), at(partName)},
		other:   []action{step(partName)},
	},
	{ // name args
		pattern: "110000",
		empty:   []action{at(partAfterName), step(partName), at(partName)},
		ident:   []action{at(partAfterName), at(partName)},
		other:   []action{at(partAfterName), step(partName)},
	},
	{ // name | guard = rhs
		pattern: "101111",
		empty:   []action{at(partAfterRHS), guardText(), lastStep(partName), at(partName)},
		ident:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		other:   []action{at(partAfterRHS), lastStep(partName)},
	},
	{ // name | guard =
		pattern: "101110",
		empty:   []action{step(partName), guardText(), at(partName)},
		ident:   []action{step(partName), at(partName)},
		other:   []action{step(partName)},
	},
	{ // name | guard
		pattern: "101100",
		empty:   []action{at(partAfterGuard), guardText(), at(partName)},
		ident:   []action{at(partAfterGuard), at(partName)},
		other:   []action{at(partAfterGuard)},
	},
	{ // name |
		pattern: "101000",
		empty:   []action{step(partGuard), at(partName)},
		ident:   []action{at(partName)},
		other:   []action{step(partGuard)},
	},
	{ // name = rhs
		pattern: "100011",
		empty:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		ident:   []action{at(partAfterRHS), lastStep(partName), at(partName)},
		other:   []action{at(partAfterRHS), lastStep(partName)},
	},
	{ // name =
		pattern: "100010",
		empty:   []action{step(partName), at(partName)},
		ident:   []action{step(partName), at(partName)},
		other:   []action{step(partName)},
	},
	{ // bare name
		pattern: "100000",
		empty:   []action{step(partName), at(partName)},
		ident:   []action{at(partName)},
		other:   []action{step(partName)},
	},
}

// startKeywords are the block-introducing keywords that bypass the
// general table: the keyword's own column always anchors the block.
var startKeywords = map[string]bool{
	"class":     true,
	"data":      true,
	"import":    true,
	"infix":     true,
	"infixl":    true,
	"infixr":    true,
	"instance":  true,
	"module":    true,
	"newtype":   true,
	"primitive": true,
	"type":      true,
}

// testVector builds the 6-bit visibility pattern for the parts.
func testVector(e *Engine, parts clauseParts, endVisible buffer.Offset) string {
	bits := make([]byte, 6)
	for k := partName; k <= partAfterRHS; k++ {
		off := parts.offsetOf(k)
		if off != buffer.NoOffset && off < endVisible {
			bits[k] = '1'
		} else {
			bits[k] = '0'
		}
	}
	return string(bits)
}

// lineIndentation computes the candidates contributed by one contour
// line. The span [lineStart, lineEnd) is segmented into clause parts;
// endVisible is the offset where the next contour line's column begins,
// limiting which parts may anchor the current line. lastLine marks the
// innermost contour line. curIdent is the current line's first token for
// ident lines.
func (e *Engine) lineIndentation(lineStart, lineEnd, endVisible buffer.Offset, lt LineType, curIdent string, lastLine bool, info *indentInfo) error {
	parts := e.segmentClause(lineStart, lineEnd)

	// Guard and right-hand-side lines use dedicated lookups where the
	// guard's visibility is a wildcard.
	switch lt {
	case LineGuard:
		e.guardIndentation(parts, endVisible, info)
		return nil
	case LineRHS:
		e.rhsIndentation(parts, endVisible, curIdent, info)
		return nil
	}

	// Start keywords bypass the general table.
	if parts.name != buffer.NoOffset && startKeywords[parts.nameText] {
		e.pushPos(info, parts.name, "")
		if parts.nameText == "data" {
			if parts.rhsMark != buffer.NoOffset {
				e.pushPos(info, parts.rhsMark, "")
			} else {
				e.pushPosOffset(info, parts.name)
			}
		} else {
			e.pushPosOffset(info, parts.name)
		}
		return nil
	}

	if lt == LineIdent {
		// A type signature anchors the following definition at the bare
		// name column.
		if parts.rhsText == "::" || parts.rhsText == "∷" {
			e.pushPos(info, parts.name, "")
			return nil
		}
		// A where clause aligns its bindings with the first binding
		// after the keyword, at the keyword's own column otherwise.
		if w := e.findTokenText(lineStart, endVisible, "where"); w != buffer.NoOffset {
			if tok, ok := e.nextToken(w+len("where"), endVisible); ok {
				e.pushPos(info, tok.start, "")
			} else {
				e.pushPos(info, w, "")
			}
			return nil
		}
		// The next clause of the same definition aligns with its name.
		if curIdent != "" && curIdent == parts.nameText {
			e.pushPos(info, parts.name, "")
			return nil
		}
	}

	vector := testVector(e, parts, endVisible)
	for _, entry := range decisionTable {
		if !patternMatch(entry.pattern, vector) {
			continue
		}
		var actions []action
		switch lt {
		case LineEmpty:
			actions = entry.empty
		case LineIdent:
			actions = entry.ident
		default:
			actions = entry.other
		}
		for _, act := range actions {
			if act.lastLine && !lastLine {
				continue
			}
			off := parts.offsetOf(act.part)
			if off == buffer.NoOffset {
				continue
			}
			if act.offset {
				e.pushPosOffset(info, off)
			} else {
				e.pushPos(info, off, act.insert)
			}
		}
		return nil
	}
	return ErrStructuralImpossible
}

// patternMatch matches a vector against a pattern where '.' is a
// wildcard bit.
func patternMatch(pattern, vector string) bool {
	if len(pattern) != len(vector) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '.' && pattern[i] != vector[i] {
			return false
		}
	}
	return true
}

// guardIndentation indents a line that begins with a guard marker:
// align with the previous guard when visible, otherwise open a guard one
// step from the name.
func (e *Engine) guardIndentation(parts clauseParts, endVisible buffer.Offset, info *indentInfo) {
	// A contour line that itself begins with a guard marker anchors the
	// next guard at its own column.
	if parts.nameText == "|" {
		e.pushPos(info, parts.name, "")
		return
	}
	if parts.guard != buffer.NoOffset && parts.guard < endVisible {
		e.pushPos(info, parts.guard, "")
		return
	}
	e.pushPosOffset(info, parts.name)
}

// rhsIndentation indents a line that begins with an assignment, type,
// or arrow marker. The guard's visibility is deliberately ignored: a
// guard anywhere in the clause anchors a hanging right-hand side.
func (e *Engine) rhsIndentation(parts clauseParts, endVisible buffer.Offset, curIdent string, info *indentInfo) {
	// A contour line that itself begins with a marker anchors the next
	// one at its own column, as in a hanging :: -> -> signature.
	if rhsMarks[parts.nameText] {
		e.pushPos(info, parts.name, "")
		return
	}
	// A leading :: is a type-signature continuation; only the bare name
	// column applies.
	if curIdent == "::" || curIdent == "∷" {
		e.pushPos(info, parts.name, "")
		return
	}
	if parts.rhsMark != buffer.NoOffset && parts.rhsMark < endVisible {
		e.pushPos(info, parts.rhsMark, "")
		return
	}
	if parts.guard != buffer.NoOffset {
		e.pushPosOffset(info, parts.guard)
		return
	}
	e.pushPosOffset(info, parts.name)
}
