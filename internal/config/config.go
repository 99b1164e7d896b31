package config

// LiterateMode selects how literate-script source is interpreted.
type LiterateMode int

const (
	// LiterateNone treats every line as code.
	LiterateNone LiterateMode = iota

	// LiterateBird treats lines prefixed with '>' as code and all other
	// lines as prose.
	LiterateBird

	// LiterateLatex treats lines between \begin{code} and \end{code}
	// markers as code.
	LiterateLatex
)

// String returns the configuration name of the mode.
func (m LiterateMode) String() string {
	switch m {
	case LiterateBird:
		return "bird"
	case LiterateLatex:
		return "latex"
	default:
		return "none"
	}
}

// KeywordOffset holds the indentation offsets applied after a
// block-introducing keyword.
type KeywordOffset struct {
	// Offset applies when the keyword starts its own line.
	Offset int

	// HangingOffset applies when the keyword ends an otherwise
	// non-empty line.
	HangingOffset int
}

// Default indentation settings.
const (
	DefaultIndentStep        = 4
	DefaultBirdDefaultOffset = 1
	DefaultThenElseOffset    = 0
)

// IndentConfig holds every tunable of the indentation engine.
type IndentConfig struct {
	// IndentStep is the column offset added when a candidate is an
	// offset from a recorded position rather than an alignment.
	IndentStep int

	// LiterateMode selects literate-script handling.
	LiterateMode LiterateMode

	// BirdDefaultOffset is the number of blanks expected after the
	// Bird-track '>' marker. Code in Bird buffers never indents to a
	// column below BirdDefaultOffset+1.
	BirdDefaultOffset int

	// LookPastEmptyLines controls whether the backward contour scan
	// continues across blank lines. When false, a blank line is a hard
	// block boundary.
	LookPastEmptyLines bool

	// ThenElseOffset is added to the column of the matching `if` when
	// indenting a line starting with `then` or `else`.
	ThenElseOffset int

	// RHSAlignColumn, when nonzero, is the column guard and
	// right-hand-side markers are padded to by the alignment helper.
	// Zero means ad hoc alignment.
	RHSAlignColumn int

	// AfterKeywordOffsets maps block-introducing keywords to the
	// offsets used for the block that follows them. Keywords absent
	// from the map fall back to IndentStep for both offsets.
	AfterKeywordOffsets map[string]KeywordOffset
}

// DefaultIndent returns the default engine configuration.
func DefaultIndent() IndentConfig {
	return IndentConfig{
		IndentStep:         DefaultIndentStep,
		LiterateMode:       LiterateNone,
		BirdDefaultOffset:  DefaultBirdDefaultOffset,
		LookPastEmptyLines: true,
		ThenElseOffset:     DefaultThenElseOffset,
		RHSAlignColumn:     0,
		AfterKeywordOffsets: map[string]KeywordOffset{
			"do":    {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"where": {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"of":    {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"let":   {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"in":    {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"then":  {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"else":  {Offset: DefaultIndentStep, HangingOffset: DefaultIndentStep},
			"{":     {Offset: 2, HangingOffset: 2},
		},
	}
}

// KeywordOffsetFor returns the offsets for a keyword, falling back to
// IndentStep for keywords not present in the table.
func (c IndentConfig) KeywordOffsetFor(keyword string) KeywordOffset {
	if ko, ok := c.AfterKeywordOffsets[keyword]; ok {
		return ko
	}
	return KeywordOffset{Offset: c.IndentStep, HangingOffset: c.IndentStep}
}

// Option adjusts a single configuration field.
type Option func(*IndentConfig)

// WithIndentStep sets the indentation step.
func WithIndentStep(step int) Option {
	return func(c *IndentConfig) { c.IndentStep = step }
}

// WithLiterateMode sets the literate-script mode.
func WithLiterateMode(mode LiterateMode) Option {
	return func(c *IndentConfig) { c.LiterateMode = mode }
}

// WithBirdDefaultOffset sets the blank run length after the Bird marker.
func WithBirdDefaultOffset(n int) Option {
	return func(c *IndentConfig) { c.BirdDefaultOffset = n }
}

// WithLookPastEmptyLines sets blank-line transparency for the contour scan.
func WithLookPastEmptyLines(look bool) Option {
	return func(c *IndentConfig) { c.LookPastEmptyLines = look }
}

// WithThenElseOffset sets the extra offset for then/else alignment.
func WithThenElseOffset(n int) Option {
	return func(c *IndentConfig) { c.ThenElseOffset = n }
}

// WithRHSAlignColumn sets the fixed alignment column for guards and
// right-hand-side markers.
func WithRHSAlignColumn(col int) Option {
	return func(c *IndentConfig) { c.RHSAlignColumn = col }
}

// WithKeywordOffset overrides the offsets for one keyword.
func WithKeywordOffset(keyword string, ko KeywordOffset) Option {
	return func(c *IndentConfig) {
		if c.AfterKeywordOffsets == nil {
			c.AfterKeywordOffsets = make(map[string]KeywordOffset)
		}
		c.AfterKeywordOffsets[keyword] = ko
	}
}

// NewIndent builds a configuration from the defaults plus options.
func NewIndent(opts ...Option) IndentConfig {
	c := DefaultIndent()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
