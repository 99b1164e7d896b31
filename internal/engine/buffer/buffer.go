package buffer

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrLineOutOfRange   = errors.New("line out of range")
)

// Buffer holds the text being indented. Text is kept as a single string;
// a line-start index is rebuilt after every edit. Line endings are
// normalized to LF on construction and on insert.
type Buffer struct {
	text       string
	lineStarts []Offset
	revision   uint64
}

// New creates an empty buffer.
func New() *Buffer {
	b := &Buffer{}
	b.reindex()
	return b
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	b := &Buffer{text: normalize(s)}
	b.reindex()
	return b
}

// normalize converts CRLF and CR line endings to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line-start table.
func (b *Buffer) reindex() {
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, Offset(i+1))
		}
	}
	b.lineStarts = starts
	b.revision++
}

// Read operations

// Text returns the full buffer content. The returned string shares
// storage with the buffer; it is a borrowed view, never a copy.
func (b *Buffer) Text() string { return b.text }

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() Offset { return Offset(len(b.text)) }

// Slice returns the text in [start, end). Out-of-range bounds are clamped.
func (b *Buffer) Slice(start, end Offset) string {
	if start < 0 {
		start = 0
	}
	if end > b.Len() {
		end = b.Len()
	}
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// ByteAt returns the byte at offset and whether the offset was valid.
func (b *Buffer) ByteAt(off Offset) (byte, bool) {
	if off < 0 || off >= b.Len() {
		return 0, false
	}
	return b.text[off], true
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if the offset is out of range.
func (b *Buffer) RuneAt(off Offset) (rune, int) {
	if off < 0 || off >= b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.text[off:])
}

// Revision returns a counter incremented on every edit. The cycle
// controller uses it to detect buffer changes between requests.
func (b *Buffer) Revision() uint64 { return b.revision }

// Line addressing

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lineStarts) }

// LineAt returns the 0-indexed line containing the offset.
// Offsets past the end map to the last line.
func (b *Buffer) LineAt(off Offset) int {
	if off <= 0 {
		return 0
	}
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineStart returns the byte offset of the start of a line.
func (b *Buffer) LineStart(line int) Offset {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return b.Len()
	}
	return b.lineStarts[line]
}

// LineEnd returns the byte offset of the end of a line (before the newline).
func (b *Buffer) LineEnd(line int) Offset {
	if line < 0 {
		return 0
	}
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return b.Len()
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) string {
	return b.Slice(b.LineStart(line), b.LineEnd(line))
}

// Coordinate conversion

// OffsetToPoint converts a byte offset to a line/column point.
func (b *Buffer) OffsetToPoint(off Offset) Point {
	if off < 0 {
		off = 0
	}
	if off > b.Len() {
		off = b.Len()
	}
	line := b.LineAt(off)
	return Point{Line: line, Column: int(off - b.lineStarts[line])}
}

// PointToOffset converts a line/column point to a byte offset.
// Columns past the line end clamp to the line end.
func (b *Buffer) PointToOffset(p Point) Offset {
	start := b.LineStart(p.Line)
	end := b.LineEnd(p.Line)
	off := start + Offset(p.Column)
	if off > end {
		off = end
	}
	if off < start {
		off = start
	}
	return off
}

// Write operations

// Insert inserts text at the given offset and returns the offset just
// past the inserted text.
func (b *Buffer) Insert(off Offset, text string) (Offset, error) {
	if off < 0 || off > b.Len() {
		return 0, ErrOffsetOutOfRange
	}
	text = normalize(text)
	b.text = b.text[:off] + text + b.text[off:]
	b.reindex()
	return off + Offset(len(text)), nil
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end Offset) error {
	if start < 0 || start > end || end > b.Len() {
		return ErrRangeInvalid
	}
	b.text = b.text[:start] + b.text[end:]
	b.reindex()
	return nil
}

// Replace replaces the text in [start, end) and returns the offset just
// past the replacement.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	if start < 0 || start > end || end > b.Len() {
		return 0, ErrRangeInvalid
	}
	text = normalize(text)
	b.text = b.text[:start] + text + b.text[end:]
	b.reindex()
	return start + Offset(len(text)), nil
}

// Display helpers

// DisplayWidth returns the number of terminal cells the string occupies,
// counting grapheme clusters rather than bytes.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}
