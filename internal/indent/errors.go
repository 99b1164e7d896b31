package indent

import (
	"errors"

	"github.com/layoutkit/offside/internal/engine/buffer"
)

// Errors returned by indentation requests. All are local to one request;
// the buffer is never modified when an error is returned.
var (
	// ErrStructuralImpossible reports a clause whose part-visibility
	// pattern matches no decision-table entry. The all-absent pattern is
	// documented as impossible but kept as a reachable error path.
	ErrStructuralImpossible = errors.New("clause parts match no decision-table entry")

	// ErrUnsupported reports an operation the engine does not perform,
	// such as region-wide re-indentation.
	ErrUnsupported = errors.New("operation not supported")

	// ErrTooDeep reports bracket nesting beyond the resolver depth cap.
	ErrTooDeep = errors.New("bracket nesting exceeds resolver depth limit")

	// ErrNoCandidate reports an apply request with an index outside the
	// candidate list.
	ErrNoCandidate = errors.New("candidate index out of range")
)

// Diagnostic is a non-fatal notice produced while scanning, such as a
// closer that does not match the innermost open bracket. The computation
// proceeds best-effort; diagnostics are reported alongside the result.
type Diagnostic struct {
	Offset  buffer.Offset
	Message string
}
