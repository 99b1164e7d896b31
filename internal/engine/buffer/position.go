package buffer

import "fmt"

// Offset represents a byte position in the buffer text.
// This is the fundamental position type, directly indexing into the text.
type Offset = int

// NoOffset marks the absence of a position. Scanning functions return it
// when a syntactic part does not occur within the scanned span.
const NoOffset Offset = -1

// Point represents a line and column position.
// Both Line and Column are 0-indexed. Column is measured in bytes from
// the start of the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}
