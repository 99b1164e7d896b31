package indent

import "testing"

func TestScanRegionUnterminatedString(t *testing.T) {
	e := newTestEngine("f = \"abc\n")
	rs := e.scanRegion(0, e.buf.Len())
	if !rs.insideString() {
		t.Fatal("region should end inside the string")
	}
	if rs.spanStart != 4 {
		t.Errorf("span start = %d, want 4", rs.spanStart)
	}
}

func TestScanRegionTerminatedString(t *testing.T) {
	e := newTestEngine(`f = "a\"b" x`)
	rs := e.scanRegion(0, e.buf.Len())
	if rs.insideString() {
		t.Error("escaped quote should not end the string early")
	}
	if len(rs.opens) != 0 {
		t.Errorf("expected no open brackets, got %d", len(rs.opens))
	}
}

func TestScanRegionCharLiteralVersusPrime(t *testing.T) {
	// The prime in f' is part of the identifier; 'a' is a literal.
	e := newTestEngine("f' = 'a'")
	rs := e.scanRegion(0, e.buf.Len())
	if rs.span != spanCode {
		t.Errorf("expected code span at end, got %d", rs.span)
	}

	// A bracket inside a char literal stays invisible.
	e = newTestEngine("f = '('")
	rs = e.scanRegion(0, e.buf.Len())
	if len(rs.opens) != 0 {
		t.Error("bracket inside char literal should not count")
	}
	if rs.span != spanCode {
		t.Errorf("expected code span at end, got %d", rs.span)
	}
}

func TestScanRegionNestedBlockComment(t *testing.T) {
	e := newTestEngine("{- a {- b -} c -} (")
	rs := e.scanRegion(0, e.buf.Len())
	if rs.insideComment() {
		t.Error("nested comment should be fully closed")
	}
	if len(rs.opens) != 1 || rs.opens[0].ch != '(' {
		t.Errorf("expected one open paren, got %+v", rs.opens)
	}
}

func TestScanRegionUnclosedBlockComment(t *testing.T) {
	e := newTestEngine("{- a {- b -} still open\n")
	rs := e.scanRegion(0, e.buf.Len())
	if !rs.insideComment() {
		t.Error("region should end inside the outer comment")
	}
	if rs.spanStart != 0 {
		t.Errorf("span start = %d, want 0", rs.spanStart)
	}
}

func TestScanRegionLineCommentHidesBrackets(t *testing.T) {
	e := newTestEngine("x = a -- (")
	rs := e.scanRegion(0, e.buf.Len())
	if len(rs.opens) != 0 {
		t.Error("bracket inside line comment should not count")
	}
	if !rs.insideComment() {
		t.Error("region ends on the comment line")
	}
}

func TestScanRegionLineCommentEndsAtNewline(t *testing.T) {
	e := newTestEngine("-- c\nf = (")
	rs := e.scanRegion(0, e.buf.Len())
	if rs.insideComment() {
		t.Error("line comment should end at the newline")
	}
	if len(rs.opens) != 1 {
		t.Errorf("expected one open bracket, got %d", len(rs.opens))
	}
}

func TestScanRegionDashOperatorIsNotComment(t *testing.T) {
	e := newTestEngine("x = a --> (")
	rs := e.scanRegion(0, e.buf.Len())
	if rs.insideComment() {
		t.Error("--> is an operator, not a comment")
	}
	if len(rs.opens) != 1 {
		t.Errorf("expected one open bracket, got %d", len(rs.opens))
	}
}

func TestScanRegionBracketNesting(t *testing.T) {
	e := newTestEngine("f = ([a, (b)]")
	rs := e.scanRegion(0, e.buf.Len())
	if len(rs.opens) != 1 || rs.opens[0].ch != '(' {
		t.Fatalf("expected the outer paren open, got %+v", rs.opens)
	}
	if rs.opens[0].off != 4 {
		t.Errorf("open offset = %d, want 4", rs.opens[0].off)
	}
}

func TestScanRegionMismatchedCloser(t *testing.T) {
	e := newTestEngine("f = (a]")
	rs := e.scanRegion(0, e.buf.Len())
	if len(rs.diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(rs.diags))
	}
	if rs.diags[0].Offset != 6 {
		t.Errorf("diagnostic offset = %d, want 6", rs.diags[0].Offset)
	}
	if len(rs.opens) != 0 {
		t.Error("mismatched closer should still pop the opener")
	}
}

func TestScanRegionUnmatchedCloser(t *testing.T) {
	e := newTestEngine("f = a)")
	rs := e.scanRegion(0, e.buf.Len())
	if len(rs.diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(rs.diags))
	}
}

func TestIsLineCommentStart(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"-- note", true},
		{"--", true},
		{"---- note", true},
		{"-->", false},
		{"--|", false},
		{"-", false},
		{"a--", false},
	}
	for _, tt := range tests {
		if got := isLineCommentStart(tt.text, 0, len(tt.text)); got != tt.want {
			t.Errorf("isLineCommentStart(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsCharLiteral(t *testing.T) {
	tests := []struct {
		text string
		at   int
		want bool
	}{
		{"'a'", 0, true},
		{"'\\n'", 0, true},
		{"f' x", 1, false}, // prime after identifier
		{"' '", 0, true},
		{"'", 0, false},
	}
	for _, tt := range tests {
		if got := isCharLiteral(tt.text, tt.at, len(tt.text)); got != tt.want {
			t.Errorf("isCharLiteral(%q, %d) = %v, want %v", tt.text, tt.at, got, tt.want)
		}
	}
}
