// Package indent computes plausible indentation columns for one line of
// an offside-rule source buffer.
//
// The engine has no parse tree. Every request re-scans the text between
// the start of the enclosing definition and the line being indented:
//
//   - the scanner tracks strings, comments, and balanced delimiters
//   - the contour tracer walks backward collecting the line starts that
//     bound the enclosing layout block
//   - the clause segmenter splits each contour line into name, guard,
//     and right-hand-side parts
//   - a fixed decision table maps the visibility pattern of those parts
//     to candidate columns for the current line type
//
// Explicit non-layout contexts (unclosed brackets, let/in, case/of,
// if/then/else) are handled by dedicated resolvers before the layout
// machinery runs.
//
// Entry points are ComputeIndentCandidates, ApplyCandidate, and
// CycleIndent. Repeated CycleIndent calls on the same unchanged line
// step through the candidate list cyclically.
//
// All operations run synchronously within the host's command loop.
// Errors are local to one request; recoverable scan failures degrade the
// candidate list instead of failing the request.
package indent
