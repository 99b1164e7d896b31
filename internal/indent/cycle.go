package indent

import "github.com/layoutkit/offside/internal/engine/buffer"

// cycleState tracks one in-progress indentation cycle. It is created on
// the first request at a line and advanced by same-line repeats; any
// other edit or a different line invalidates it and the next request
// recomputes from scratch.
type cycleState struct {
	line         int
	candidates   []Candidate
	index        int
	lastInserted int
	revision     uint64
}

// CycleIndent performs one user-visible indentation request: the first
// call at a line computes the candidate list and applies candidate 0;
// each repeat on the same unchanged line replaces the previous
// indentation (and any auto-inserted text) with the next candidate,
// wrapping around after the last one.
func (e *Engine) CycleIndent(pos buffer.Offset) (Candidate, error) {
	line := e.buf.LineAt(pos)

	st := e.cycle
	if st == nil || st.line != line || st.revision != e.buf.Revision() || len(st.candidates) == 0 {
		res, err := e.ComputeIndentCandidates(pos)
		if err != nil {
			return Candidate{}, err
		}
		if len(res.Candidates) == 0 {
			e.cycle = nil
			return Candidate{}, ErrNoCandidate
		}
		st = &cycleState{line: line, candidates: res.Candidates}
	} else {
		st.index = (st.index + 1) % len(st.candidates)
	}

	// Remove the text inserted by the previous cycle step before
	// applying the next candidate.
	if st.lastInserted > 0 {
		contentStart := e.indentOffset(line)
		if contentStart != buffer.NoOffset {
			end := contentStart + buffer.Offset(st.lastInserted)
			if end > e.buf.LineEnd(line) {
				end = e.buf.LineEnd(line)
			}
			if err := e.buf.Delete(contentStart, end); err != nil {
				return Candidate{}, err
			}
		}
		st.lastInserted = 0
	}

	cand := st.candidates[st.index]
	if _, err := e.ApplyCandidate(e.buf.LineStart(line), st.candidates, st.index); err != nil {
		return Candidate{}, err
	}
	st.lastInserted = len(cand.Insert)
	st.revision = e.buf.Revision()
	e.cycle = st
	return cand, nil
}

// ResetCycle discards any in-progress cycle, forcing the next request
// to recompute candidates.
func (e *Engine) ResetCycle() { e.cycle = nil }

// CycleIndex returns the current position within the cycle and the
// cycle length. Both are zero when no cycle is in progress.
func (e *Engine) CycleIndex() (index, length int) {
	if e.cycle == nil {
		return 0, 0
	}
	return e.cycle.index, len(e.cycle.candidates)
}
