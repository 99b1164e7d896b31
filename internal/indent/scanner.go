package indent

import (
	"fmt"
	"strings"

	"github.com/layoutkit/offside/internal/engine/buffer"
)

// spanKind identifies the lexical span a scan position sits inside.
type spanKind int

const (
	spanCode spanKind = iota
	spanString
	spanChar
	spanLineComment
	spanBlockComment
)

// openDelim is an opening bracket with no matching closer in the
// scanned region.
type openDelim struct {
	off buffer.Offset
	ch  byte
}

// regionScan is the result of one forward pass over a code region.
type regionScan struct {
	opens        []openDelim
	span         spanKind
	spanStart    buffer.Offset
	commentDepth int // nesting depth of block comments
	diags        []Diagnostic
}

// insideString reports whether the region end sits in an unterminated
// string literal.
func (rs *regionScan) insideString() bool { return rs.span == spanString }

// insideComment reports whether the region end sits in a comment.
func (rs *regionScan) insideComment() bool {
	return rs.span == spanLineComment || rs.span == spanBlockComment
}

// openBracket returns the innermost unclosed bracket, if any.
func (rs *regionScan) openBracket() (openDelim, bool) {
	if len(rs.opens) == 0 {
		return openDelim{}, false
	}
	return rs.opens[len(rs.opens)-1], true
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

func isOpenBracket(ch byte) bool  { return ch == '(' || ch == '[' || ch == '{' }
func isCloseBracket(ch byte) bool { return ch == ')' || ch == ']' || ch == '}' }

// operatorChars are the symbol characters operators are built from.
const operatorChars = "!#$%&*+./<=>?@\\^|~:-"

func isOperatorByte(ch byte) bool {
	return strings.IndexByte(operatorChars, ch) >= 0
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == '\'' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// scanRegion scans code in [start, end), tracking string and comment
// spans and balanced delimiters. Prose lines of literate buffers are
// skipped. Mismatched closers are recorded as diagnostics and the scan
// proceeds best-effort.
func (e *Engine) scanRegion(start, end buffer.Offset) regionScan {
	rs := regionScan{span: spanCode}
	if end > e.buf.Len() {
		end = e.buf.Len()
	}
	if start < 0 {
		start = 0
	}

	line := e.buf.LineAt(start)
	lastLine := e.buf.LineAt(end)
	for ; line <= lastLine; line++ {
		// Line comments never cross a newline.
		if rs.span == spanLineComment {
			rs.span = spanCode
		}

		from := e.codeStart(line)
		if from < start {
			from = start
		}
		to := e.buf.LineEnd(line)
		if to > end {
			to = end
		}
		if from < to {
			e.scanLineRegion(&rs, from, to)
		}
	}
	return rs
}

// scanLineRegion advances the region scan across one line's code bytes.
func (e *Engine) scanLineRegion(rs *regionScan, start, end buffer.Offset) {
	text := e.buf.Text()
	i := int(start)
	limit := int(end)

	for i < limit {
		ch := text[i]

		switch rs.span {
		case spanString:
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == '"' {
				rs.span = spanCode
			}
			i++
			continue

		case spanChar:
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == '\'' {
				rs.span = spanCode
			}
			i++
			continue

		case spanLineComment:
			i = limit
			continue

		case spanBlockComment:
			if ch == '{' && i+1 < limit && text[i+1] == '-' {
				rs.commentDepth++
				i += 2
				continue
			}
			if ch == '-' && i+1 < limit && text[i+1] == '}' {
				rs.commentDepth--
				if rs.commentDepth == 0 {
					rs.span = spanCode
				}
				i += 2
				continue
			}
			i++
			continue
		}

		// spanCode
		switch {
		case ch == '"':
			rs.span = spanString
			rs.spanStart = buffer.Offset(i)
			i++

		case ch == '\'' && isCharLiteral(text, i, limit):
			rs.span = spanChar
			rs.spanStart = buffer.Offset(i)
			i++

		case ch == '{' && i+1 < limit && text[i+1] == '-':
			rs.span = spanBlockComment
			rs.spanStart = buffer.Offset(i)
			rs.commentDepth = 1
			i += 2

		case isLineCommentStart(text, i, limit):
			rs.span = spanLineComment
			rs.spanStart = buffer.Offset(i)
			i = limit

		case isOpenBracket(ch):
			rs.opens = append(rs.opens, openDelim{off: buffer.Offset(i), ch: ch})
			i++

		case isCloseBracket(ch):
			if n := len(rs.opens); n > 0 {
				top := rs.opens[n-1]
				if closerFor(top.ch) != ch {
					rs.diags = append(rs.diags, Diagnostic{
						Offset:  buffer.Offset(i),
						Message: fmt.Sprintf("%q closes %q opened at offset %d", ch, top.ch, top.off),
					})
				}
				rs.opens = rs.opens[:n-1]
			} else {
				rs.diags = append(rs.diags, Diagnostic{
					Offset:  buffer.Offset(i),
					Message: fmt.Sprintf("unmatched %q", ch),
				})
			}
			i++

		default:
			i++
		}
	}
}

// isCharLiteral distinguishes a character literal from a prime in an
// identifier such as f'.
func isCharLiteral(text string, i, limit int) bool {
	if i > 0 && isIdentByte(text[i-1]) {
		return false
	}
	j := i + 1
	if j >= limit {
		return false
	}
	if text[j] == '\\' {
		j++
		for j < limit && text[j] != '\'' {
			j++
		}
		return j < limit
	}
	// One rune then a closing quote.
	for j < limit && j <= i+4 {
		if text[j] == '\'' {
			return j > i+1
		}
		j++
	}
	return false
}

// isLineCommentStart reports whether a dash run at i starts a line
// comment. A run of two or more dashes followed by an operator character
// is an operator, not a comment.
func isLineCommentStart(text string, i, limit int) bool {
	if text[i] != '-' || i+1 >= limit || text[i+1] != '-' {
		return false
	}
	j := i + 2
	for j < limit && text[j] == '-' {
		j++
	}
	return j >= limit || !isOperatorByte(text[j])
}
