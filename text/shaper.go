package text

import "github.com/go-text/typesetting/language"

// Run is one shaping run: a span of characters sharing a font, a resolved
// direction and a script.
type Run struct {
	// Text is the whole paragraph. Shapers may read outside [Start, End)
	// for context but only produce glyphs for the span.
	Text       []rune
	Start, End int

	// Direction is DirectionLTR or DirectionRTL.
	Direction Direction
	Script    language.Script
	Font      Font
}

// ShapedGlyph is a glyph produced by a Shaper.
type ShapedGlyph struct {
	GID GlyphID

	// Cluster is the index into Run.Text of the first character the glyph
	// belongs to.
	Cluster int

	XAdvance, YAdvance float64
	XOffset, YOffset   float64
}

// ShapedRun is the output of a Shaper.
type ShapedRun struct {
	// Glyphs are in visual order: right-to-left runs come back reversed.
	Glyphs []ShapedGlyph

	// Kerned reports that the shaper already applied the font's kerning.
	Kerned bool
}

// Shaper converts runs of characters to glyphs.
// Implementations provide different levels of text shaping support:
//   - BuiltinShaper: one glyph per character from the Font interface
//   - GoTextShaper: HarfBuzz shaping via go-text/typesetting
type Shaper interface {
	Shape(run Run) ShapedRun
}
