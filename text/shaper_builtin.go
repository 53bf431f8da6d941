package text

import "slices"

// BuiltinShaper maps each character to one glyph using Font.GlyphIndex and
// Font.GlyphAdvance. It supports Latin, Cyrillic, Greek, CJK, and other
// scripts that don't require complex text shaping (ligatures, contextual
// forms, etc.). Kerning is left to the engine.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (BuiltinShaper) Shape(run Run) ShapedRun {
	if run.Font == nil || run.Start >= run.End {
		return ShapedRun{}
	}

	glyphs := make([]ShapedGlyph, 0, run.End-run.Start)
	for cluster := run.Start; cluster < run.End; cluster++ {
		gid := run.Font.GlyphIndex(run.Text[cluster])
		glyphs = append(glyphs, ShapedGlyph{
			GID:      gid,
			Cluster:  cluster,
			XAdvance: run.Font.GlyphAdvance(gid),
		})
	}

	if run.Direction == DirectionRTL {
		slices.Reverse(glyphs)
	}
	return ShapedRun{Glyphs: glyphs}
}
