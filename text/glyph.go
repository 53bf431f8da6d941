package text

// GlyphFlags holds per-glyph attributes.
type GlyphFlags uint8

const (
	// GlyphUnderline marks a glyph drawn with an underline.
	GlyphUnderline GlyphFlags = 1 << iota
	// GlyphMnemonic marks the character that followed a mnemonic marker.
	GlyphMnemonic
	// GlyphFallback marks a glyph taken from a fallback font.
	GlyphFallback
	// GlyphWhitespace marks a whitespace character (space, tab, newline).
	GlyphWhitespace
	// GlyphIgnorable marks an invisible directional formatting code.
	GlyphIgnorable
)

// Glyph is a shaped glyph in logical order.
type Glyph struct {
	// Direction is the resolved directional class of the cluster's first
	// character, after embeddings and overrides.
	Direction Direction

	// RunDirection is the direction the glyph's run was shaped with.
	RunDirection Direction

	GID GlyphID

	// Start and End delimit the source bytes of the glyph's cluster,
	// relative to the shaped string.
	Start, End int

	// Rune is the first character of the cluster, after password masking.
	Rune rune

	// Font is the font the glyph was shaped with.
	Font Font

	// X is the logical pen position of the glyph within the shaped string.
	X float64

	Advance          float64
	OffsetX, OffsetY float64

	Flags GlyphFlags
}

// Has reports whether all of flags are set.
func (g *Glyph) Has(flags GlyphFlags) bool {
	return g.Flags&flags == flags
}

// IsWhitespace reports whether the glyph is a whitespace character.
func (g *Glyph) IsWhitespace() bool {
	return g.Flags&GlyphWhitespace != 0
}

// IsLineBreak reports whether the glyph is a newline.
func (g *Glyph) IsLineBreak() bool {
	return g.Rune == '\n'
}

// IsMissing reports whether the font had no glyph for a visible
// character of the cluster.
func (g *Glyph) IsMissing() bool {
	return g.GID == 0 && g.Flags&(GlyphIgnorable|GlyphWhitespace) == 0
}

// Right returns the logical trailing edge of the glyph.
func (g *Glyph) Right() float64 {
	return g.X + g.Advance
}
