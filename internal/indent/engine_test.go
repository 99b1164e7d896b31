package indent

import (
	"errors"
	"testing"

	"github.com/layoutkit/offside/internal/config"
	"github.com/layoutkit/offside/internal/engine/buffer"
)

func newTestEngine(text string, opts ...config.Option) *Engine {
	return New(buffer.NewFromString(text), config.NewIndent(opts...))
}

func columns(cands []Candidate) []int {
	cols := make([]int, len(cands))
	for i, c := range cands {
		cols[i] = c.Column
	}
	return cols
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func candidatesAt(t *testing.T, e *Engine, pos buffer.Offset) Result {
	t.Helper()
	res, err := e.ComputeIndentCandidates(pos)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	return res
}

func TestEmptyLineAfterSimpleBinding(t *testing.T) {
	e := newTestEngine("f x = x\n")
	res := candidatesAt(t, e, 8)
	if got := columns(res.Candidates); !equalInts(got, []int{6, 4, 0}) {
		t.Errorf("candidates = %v, want [6 4 0]", got)
	}
}

func TestApplyCandidateIsIdempotent(t *testing.T) {
	e := newTestEngine("f x = x\n")
	res := candidatesAt(t, e, 8)

	if _, err := e.ApplyCandidate(8, res.Candidates, 0); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := e.buf.Text()

	res2 := candidatesAt(t, e, 8)
	if !equalInts(columns(res2.Candidates), columns(res.Candidates)) {
		t.Errorf("candidates changed after apply: %v", columns(res2.Candidates))
	}
	if _, err := e.ApplyCandidate(8, res2.Candidates, 0); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if e.buf.Text() != want {
		t.Errorf("re-applying the same candidate changed the text: %q", e.buf.Text())
	}
}

func TestBracketContentAlignment(t *testing.T) {
	e := newTestEngine("foo = (bar,\nbaz)")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{7, 10}) {
		t.Errorf("candidates = %v, want [7 10]", got)
	}
}

func TestHangingBracketVirtualIndentation(t *testing.T) {
	e := newTestEngine("f = (\n")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	if len(res.Candidates) == 0 || res.Candidates[0].Column != 4 {
		t.Errorf("hanging paren should indent at its own column, got %v", columns(res.Candidates))
	}
}

func TestHangingBraceOffset(t *testing.T) {
	e := newTestEngine("f = X {\n")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	// Hanging brace: line indent plus the configured brace offset.
	if len(res.Candidates) == 0 || res.Candidates[0].Column != 2 {
		t.Errorf("candidates = %v, want leading 2", columns(res.Candidates))
	}
}

func TestCloserAlignsUnderOpener(t *testing.T) {
	e := newTestEngine("f = (bar,\n)")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if len(got) == 0 || got[0] != 4 {
		t.Errorf("closer should align under the opener, got %v", got)
	}
}

func TestCaseAlternativeCandidates(t *testing.T) {
	e := newTestEngine("f x = case x of\n    Just y -> y\n")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{14, 8, 4, 2, 0}) {
		t.Errorf("candidates = %v, want [14 8 4 2 0]", got)
	}
}

func TestNestedCaseOfBindsInnerOpener(t *testing.T) {
	e := newTestEngine("f = case x of\n    A -> case y\nof\n")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{9}) {
		t.Errorf("candidates = %v, want [9]", got)
	}
	for _, c := range res.Candidates {
		if c.Column == 4 {
			t.Error("closer paired with the outer case instead of the inner one")
		}
	}
}

func TestNestedCaseOfSkipsClosedPair(t *testing.T) {
	// The inner case already has its of; the closer pairs with the outer.
	e := newTestEngine("f = case case y of\n        A -> 1\nof\n")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestGuardAlignsWithPreviousGuard(t *testing.T) {
	e := newTestEngine("f x\n  | x > 0 = 1\n  | otherwise = 2")
	pos := e.buf.PointToOffset(buffer.Point{Line: 2, Column: 2})
	res := candidatesAt(t, e, pos)
	got := columns(res.Candidates)
	if !equalInts(got, []int{2, 4}) {
		t.Errorf("candidates = %v, want [2 4]", got)
	}
}

func TestFirstGuardOpensFromName(t *testing.T) {
	e := newTestEngine("f x\n| p = 1")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestInAlignsWithOpenLet(t *testing.T) {
	e := newTestEngine("h = let a = 1\nin a")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestInAlignsWithIndentedLet(t *testing.T) {
	e := newTestEngine("g = let a = 1\n        b = 2\n    in a + b")
	pos := e.buf.PointToOffset(buffer.Point{Line: 2, Column: 4})
	res := candidatesAt(t, e, pos)
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestLayoutClosedLetIsSkipped(t *testing.T) {
	// The let block ends at the shallower print line, so the in below
	// has no opener and falls back to layout analysis.
	e := newTestEngine("f x = do\n    let a = 1\n    print a\n    in")
	pos := e.buf.PointToOffset(buffer.Point{Line: 3, Column: 4})
	res := candidatesAt(t, e, pos)
	got := columns(res.Candidates)
	if !equalInts(got, []int{10, 4, 2, 0}) {
		t.Errorf("candidates = %v, want [10 4 2 0]", got)
	}
}

func TestThenAlignsWithIf(t *testing.T) {
	e := newTestEngine("f = if p\nthen 1")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestElseAlignsWithIf(t *testing.T) {
	e := newTestEngine("f = if p\n    then 1\nelse 2")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestThenElseOffsetConfig(t *testing.T) {
	e := newTestEngine("f = if p\nthen 1", config.WithThenElseOffset(2))
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{6}) {
		t.Errorf("candidates = %v, want [6]", got)
	}
}

func TestAfterHangingDo(t *testing.T) {
	e := newTestEngine("f = do\n")
	res := candidatesAt(t, e, 7)
	got := columns(res.Candidates)
	if !equalInts(got, []int{4, 0}) {
		t.Errorf("candidates = %v, want [4 0]", got)
	}
}

func TestAfterWhereAloneOnLine(t *testing.T) {
	e := newTestEngine("f x = y\n  where\n")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{6, 2, 4, 0}) {
		t.Errorf("candidates = %v, want [6 2 4 0]", got)
	}
}

func TestAfterKeywordWithContent(t *testing.T) {
	e := newTestEngine("f = do foo\n")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{7, 4, 0}) {
		t.Errorf("candidates = %v, want [7 4 0]", got)
	}
}

func TestStringContinuation(t *testing.T) {
	e := newTestEngine("f = \"abc\n")
	res := candidatesAt(t, e, 9)
	got := columns(res.Candidates)
	if !equalInts(got, []int{5}) {
		t.Errorf("candidates = %v, want [5]", got)
	}
}

func TestCommentContinuation(t *testing.T) {
	e := newTestEngine("{- hello\n")
	res := candidatesAt(t, e, 9)
	got := columns(res.Candidates)
	if !equalInts(got, []int{0, 1}) {
		t.Errorf("candidates = %v, want [0 1]", got)
	}
}

func TestCommentContinuationFollowsPreviousLine(t *testing.T) {
	e := newTestEngine("{- a\n   b\n")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{0, 1, 3}) {
		t.Errorf("candidates = %v, want [0 1 3]", got)
	}
}

func TestMismatchedBracketDiagnostic(t *testing.T) {
	e := newTestEngine("f = (a]\n")
	res := candidatesAt(t, e, 8)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(res.Diagnostics))
	}
	if len(res.Candidates) == 0 {
		t.Error("diagnostics should not suppress candidates")
	}
}

func TestResolveDepthCap(t *testing.T) {
	e := newTestEngine("f = (a\n")

	var info indentInfo
	err := e.indentationInfo(0, e.buf.Len(), LineEmpty, token{}, maxResolveDepth, &info)
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}
	if _, err := e.virtualIndentation(5, maxResolveDepth); !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}
}

func TestAllPartsInvisibleIsError(t *testing.T) {
	e := newTestEngine("f x = x")
	var info indentInfo
	err := e.lineIndentation(0, 7, 0, LineEmpty, "", true, &info)
	if !errors.Is(err, ErrStructuralImpossible) {
		t.Errorf("expected ErrStructuralImpossible, got %v", err)
	}
}

func TestTypeSignatureAnchorsDefinition(t *testing.T) {
	e := newTestEngine("f :: Int -> Int\ng")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{0}) {
		t.Errorf("candidates = %v, want [0]", got)
	}
}

func TestWhereBindingsAlign(t *testing.T) {
	e := newTestEngine("f x = y where g = 1\nh2")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{14}) {
		t.Errorf("candidates = %v, want [14]", got)
	}
}

func TestNextClauseAlignsWithSameName(t *testing.T) {
	e := newTestEngine("f 1 = 0\nf")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{0}) {
		t.Errorf("candidates = %v, want [0]", got)
	}
}

func TestDataDeclarationAnchors(t *testing.T) {
	e := newTestEngine("data Foo = Bar\n")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{0, 9}) {
		t.Errorf("candidates = %v, want [0 9]", got)
	}

	e = newTestEngine("data Foo\n")
	res = candidatesAt(t, e, e.buf.LineStart(1))
	got = columns(res.Candidates)
	if !equalInts(got, []int{0, 4}) {
		t.Errorf("candidates = %v, want [0 4]", got)
	}
}

func TestImportAnchors(t *testing.T) {
	e := newTestEngine("import Data.List\n")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{0, 4}) {
		t.Errorf("candidates = %v, want [0 4]", got)
	}
}

func TestHangingSignatureArrowsAlign(t *testing.T) {
	e := newTestEngine("f\n  :: Int\n-> Int")
	res := candidatesAt(t, e, e.buf.LineStart(2))
	got := columns(res.Candidates)
	if !equalInts(got, []int{2, 4}) {
		t.Errorf("candidates = %v, want [2 4]", got)
	}
}

func TestRHSOpensFromGuard(t *testing.T) {
	e := newTestEngine("f x | p\n= 1")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{8}) {
		t.Errorf("candidates = %v, want [8]", got)
	}
}

func TestRHSAlignsUnderVisibleMark(t *testing.T) {
	e := newTestEngine("f x = 1\n= 2")
	res := candidatesAt(t, e, e.buf.LineStart(1))
	got := columns(res.Candidates)
	if !equalInts(got, []int{4}) {
		t.Errorf("candidates = %v, want [4]", got)
	}
}

func TestLookPastEmptyLines(t *testing.T) {
	text := "f = 2\n\n  g = 3\n"

	e := newTestEngine(text, config.WithLookPastEmptyLines(false))
	res := candidatesAt(t, e, e.buf.LineStart(3))
	if got := columns(res.Candidates); !equalInts(got, []int{6, 2}) {
		t.Errorf("bounded candidates = %v, want [6 2]", got)
	}

	e = newTestEngine(text, config.WithLookPastEmptyLines(true))
	res = candidatesAt(t, e, e.buf.LineStart(3))
	if got := columns(res.Candidates); !equalInts(got, []int{6, 2, 4, 0}) {
		t.Errorf("unbounded candidates = %v, want [6 2 4 0]", got)
	}
}

func TestEmptyBufferSuggestsMinColumn(t *testing.T) {
	e := newTestEngine("")
	res := candidatesAt(t, e, 0)
	if got := columns(res.Candidates); !equalInts(got, []int{0}) {
		t.Errorf("candidates = %v, want [0]", got)
	}
}

func TestVirtualIndentation(t *testing.T) {
	e := newTestEngine("f = (a\n")
	col, err := e.VirtualIndentation(5)
	if err != nil {
		t.Fatalf("virtual indentation failed: %v", err)
	}
	if col != 5 {
		t.Errorf("virtual column = %d, want 5", col)
	}

	// A token already at the line start keeps its column.
	col, err = e.VirtualIndentation(0)
	if err != nil {
		t.Fatal(err)
	}
	if col != 0 {
		t.Errorf("virtual column = %d, want 0", col)
	}
}

func TestApplyCandidateInvalidIndex(t *testing.T) {
	e := newTestEngine("f x = x\n")
	res := candidatesAt(t, e, 8)
	if _, err := e.ApplyCandidate(8, res.Candidates, len(res.Candidates)); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
	if _, err := e.ApplyCandidate(8, res.Candidates, -1); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestReindentRegionUnsupported(t *testing.T) {
	e := newTestEngine("f x = x\n")
	if err := e.ReindentRegion(0, e.buf.Len()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
