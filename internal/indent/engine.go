package indent

import (
	"sort"

	"github.com/layoutkit/offside/internal/config"
	"github.com/layoutkit/offside/internal/engine/buffer"
)

// Engine computes indentation candidates over one buffer. It holds no
// parse state; every request re-scans from the enclosing definition.
type Engine struct {
	buf   *buffer.Buffer
	cfg   config.IndentConfig
	cycle *cycleState
}

// New creates an engine over a buffer.
func New(buf *buffer.Buffer, cfg config.IndentConfig) *Engine {
	return &Engine{buf: buf, cfg: cfg}
}

// Buffer returns the buffer the engine operates on.
func (e *Engine) Buffer() *buffer.Buffer { return e.buf }

// Config returns the engine configuration snapshot.
func (e *Engine) Config() config.IndentConfig { return e.cfg }

// ComputeIndentCandidates returns the ordered candidate list for the
// line containing pos. The buffer is never modified. An empty list with
// a nil error means the engine has no suggestion (for example on a
// literate prose line).
func (e *Engine) ComputeIndentCandidates(pos buffer.Offset) (Result, error) {
	line := e.buf.LineAt(pos)

	// Prose lines of literate buffers are not indented.
	if e.cfg.LiterateMode != config.LiterateNone &&
		!e.isCodeLine(line) && e.buf.LineText(line) != "" {
		return Result{}, nil
	}

	indentPoint := e.indentOffset(line)
	if indentPoint == buffer.NoOffset {
		indentPoint = e.buf.LineStart(line)
	}

	defStart := e.startOfDef(indentPoint)
	scan := e.scanRegion(defStart, indentPoint)

	var info indentInfo
	info.diags = scan.diags

	switch {
	case scan.insideString():
		// Continue the string one past its opening quote.
		info.push(e.buf.OffsetToPoint(scan.spanStart).Column+1, "")

	case scan.insideComment():
		e.commentIndentation(scan.spanStart, line, &info)

	default:
		lt, _ := e.classifyLine(line)
		curTok, _ := e.leadingToken(line)
		if err := e.indentationInfo(defStart, indentPoint, lt, curTok, 0, &info); err != nil {
			return Result{Diagnostics: info.diags}, err
		}
	}

	e.clampToMinColumn(&info)
	if len(info.cands) == 0 {
		info.push(e.minColumn(), "")
	}
	return Result{Candidates: info.cands, Diagnostics: info.diags}, nil
}

// indentationInfo dispatches one analysis of the span [defStart,
// indentPoint): bracket interior, closing keyword, after-keyword block,
// or plain layout. It recurses into bracket interiors up to the depth
// cap.
func (e *Engine) indentationInfo(defStart, indentPoint buffer.Offset, lt LineType, curTok token, depth int, info *indentInfo) error {
	if depth >= maxResolveDepth {
		return ErrTooDeep
	}

	scan := e.scanRegion(defStart, indentPoint)
	if depth > 0 {
		info.diags = append(info.diags, scan.diags...)
	}

	if open, ok := scan.openBracket(); ok {
		return e.insideBracket(open, indentPoint, lt, curTok, depth, info)
	}

	if curTok.kind == tokIdent && closeKeywords[curTok.text] != "" {
		if e.closeKeywordIndentation(defStart, indentPoint, curTok.text, info) {
			return nil
		}
	}

	line := e.buf.LineAt(indentPoint)
	e.afterKeywordIndentation(defStart, line, info)
	return e.layoutIndentInfo(defStart, indentPoint, lt, curTok.text, info)
}

// layoutIndentInfo runs the contour tracer over the span and feeds every
// contour line through the decision table. The innermost contour line
// contributes first, so cycling starts at the nearest context and moves
// outward.
func (e *Engine) layoutIndentInfo(defStart, indentPoint buffer.Offset, lt LineType, curIdent string, info *indentInfo) error {
	contour := e.traceContour(defStart, indentPoint)
	if len(contour) == 0 {
		info.push(e.minColumn(), "")
		return nil
	}

	for i := len(contour) - 1; i >= 0; i-- {
		c := contour[i]
		cLine := e.buf.LineAt(c)
		lineEnd := e.buf.LineEnd(cLine)

		// Visible until the column where the next contour line begins.
		endVisible := lineEnd
		if i+1 < len(contour) {
			nextCol := e.buf.OffsetToPoint(contour[i+1]).Column
			endVisible = e.buf.PointToOffset(buffer.Point{Line: cLine, Column: nextCol})
		}

		// Contour lines inside open structures or comments relative to
		// the definition start do not contribute.
		sc := e.scanRegion(defStart, c)
		if _, open := sc.openBracket(); open || sc.insideComment() || sc.insideString() {
			continue
		}

		lastLine := i == len(contour)-1
		if err := e.lineIndentation(c, lineEnd, endVisible, lt, curIdent, lastLine, info); err != nil {
			return err
		}
	}
	return nil
}

// startOfDef returns the offset bounding the enclosing definition: the
// first code byte of the nearest preceding line that starts at the
// minimum column. Literate prose lines with content are hard boundaries.
func (e *Engine) startOfDef(off buffer.Offset) buffer.Offset {
	minCol := e.minColumn()
	earliest := e.buf.LineStart(e.buf.LineAt(off))

	for line := e.buf.LineAt(off); line >= 0; line-- {
		if !e.isCodeLine(line) {
			if e.buf.LineText(line) != "" {
				return earliest // prose boundary
			}
			continue
		}
		indentOff := e.indentOffset(line)
		if indentOff == buffer.NoOffset || indentOff >= off {
			continue
		}
		earliest = e.codeStart(line)
		if e.lineIndent(line) <= minCol && !e.lineIsComment(line) {
			return indentOff
		}
	}
	return earliest
}

// commentIndentation aligns a line inside a comment: the previous
// comment line's indentation, the comment opener, and one past it, in
// order of proximity to the current column.
func (e *Engine) commentIndentation(spanStart buffer.Offset, line int, info *indentInfo) {
	openCol := e.buf.OffsetToPoint(spanStart).Column
	cur := e.lineIndent(line)
	if cur < 0 {
		cur = 0
	}

	if prev := line - 1; prev >= 0 && e.buf.LineAt(spanStart) < line {
		if col := e.lineIndent(prev); col >= 0 {
			info.push(col, "")
		}
	}
	info.push(openCol, "")
	info.push(openCol+1, "")

	sort.SliceStable(info.cands, func(i, j int) bool {
		di := info.cands[i].Column - cur
		if di < 0 {
			di = -di
		}
		dj := info.cands[j].Column - cur
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
}

// clampToMinColumn lifts candidates below the literate minimum column.
func (e *Engine) clampToMinColumn(info *indentInfo) {
	minCol := e.minColumn()
	if minCol == 0 {
		return
	}
	seen := make(map[Candidate]bool, len(info.cands))
	out := info.cands[:0]
	for _, c := range info.cands {
		if c.Column < minCol {
			c.Column = minCol
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	info.cands = out
}

// ApplyCandidate re-indents the line containing pos to the chosen
// candidate and inserts its literal text, preserving any literate
// marker. It returns the offset just past what was written.
func (e *Engine) ApplyCandidate(pos buffer.Offset, cands []Candidate, index int) (buffer.Offset, error) {
	if index < 0 || index >= len(cands) {
		return 0, ErrNoCandidate
	}
	cand := cands[index]
	line := e.buf.LineAt(pos)

	contentStart, err := e.setLineIndentation(line, cand.Column)
	if err != nil {
		return 0, err
	}
	if cand.Insert == "" {
		return contentStart, nil
	}
	return e.buf.Insert(contentStart, cand.Insert)
}

// ReindentRegion is not supported: the engine indents one line at a
// time.
func (e *Engine) ReindentRegion(start, end buffer.Offset) error {
	return ErrUnsupported
}

// VirtualIndentation returns the column the token at pos would occupy
// if it began its own line.
func (e *Engine) VirtualIndentation(pos buffer.Offset) (int, error) {
	return e.virtualIndentation(pos, 0)
}
