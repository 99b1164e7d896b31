package indent

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		text string
		want LineType
	}{
		{"", LineEmpty},
		{"   ", LineEmpty},
		{"-- note", LineComment},
		{"{- note", LineComment},
		{"foo x = 1", LineIdent},
		{"  foo", LineIdent},
		{"| otherwise = 2", LineGuard},
		{"|| x", LineOther},
		{"= x", LineRHS},
		{"-> b", LineRHS},
		{":: Int", LineRHS},
		{"<- action", LineRHS},
		{"--> b", LineOther},
		{"(a, b) = x", LineOther},
		{", y", LineOther},
		{`"str" ++ x`, LineOther},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e := newTestEngine(tt.text)
			lt, _ := e.classifyLine(0)
			if lt != tt.want {
				t.Errorf("classifyLine(%q) = %v, want %v", tt.text, lt, tt.want)
			}
		})
	}
}

func TestLineTypeString(t *testing.T) {
	tests := []struct {
		lt   LineType
		want string
	}{
		{LineEmpty, "empty"},
		{LineComment, "comment"},
		{LineIdent, "ident"},
		{LineGuard, "guard"},
		{LineRHS, "rhs"},
		{LineOther, "other"},
	}
	for _, tt := range tests {
		if got := tt.lt.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLeadingToken(t *testing.T) {
	e := newTestEngine("  where g = 1")
	tok, ok := e.leadingToken(0)
	if !ok || tok.text != "where" {
		t.Errorf("leading token = %q ok %v, want where", tok.text, ok)
	}

	e = newTestEngine("   ")
	if _, ok := e.leadingToken(0); ok {
		t.Error("blank line should have no leading token")
	}
}
