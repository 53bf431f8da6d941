package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// GoTextShaper provides HarfBuzz-level text shaping using go-text/typesetting.
// It supports advanced OpenType features including:
//   - Ligature substitution (fi, fl, ffi, etc.)
//   - Kerning pairs (AV, To, etc.)
//   - Right-to-left text (Arabic, Hebrew)
//   - Complex scripts (Devanagari, Thai, etc.)
//
// Runs whose font does not implement GoTextFont are shaped with
// BuiltinShaper instead.
//
// GoTextShaper is safe for concurrent use. It creates lightweight font.Face
// instances per Shape() call (font.Face is NOT safe for concurrent use).
// The HarfbuzzShaper instances are pooled via sync.Pool since they also
// are not concurrent-safe.
type GoTextShaper struct {
	// shaperPool pools HarfbuzzShaper instances for concurrent use.
	shaperPool sync.Pool

	// Language is passed to HarfBuzz for language-specific forms.
	Language language.Language

	builtin BuiltinShaper
}

// NewGoTextShaper creates a new GoTextShaper backed by go-text/typesetting's
// HarfBuzz implementation.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		Language: language.NewLanguage("en"),
	}
}

// Shape implements the Shaper interface.
func (s *GoTextShaper) Shape(run Run) ShapedRun {
	if run.Font == nil || run.Start >= run.End {
		return ShapedRun{}
	}

	gf, ok := run.Font.(GoTextFont)
	if !ok {
		return s.builtin.Shape(run)
	}
	goTextFont := gf.GoTextFont()
	if goTextFont == nil {
		return s.builtin.Shape(run)
	}

	// font.Face is NOT safe for concurrent use, so each Shape() call gets
	// its own instance. font.NewFace is cheap; it wraps the thread-safe *Font.
	input := shaping.Input{
		Text:      run.Text,
		RunStart:  run.Start,
		RunEnd:    run.End,
		Direction: mapDirection(run.Direction),
		Face:      font.NewFace(goTextFont),
		Size:      floatToFixed(run.Font.Size()),
		Script:    run.Script,
		Language:  s.Language,
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	return ShapedRun{Glyphs: convertGlyphs(output.Glyphs), Kerned: true}
}

// mapDirection converts our text.Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// convertGlyphs converts go-text/typesetting output glyphs to ShapedGlyphs.
// ClusterIndex is already an index into the full input text.
func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	for i, g := range glyphs {
		result[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // GlyphID is uint16 in sfnt fonts
			Cluster:  g.ClusterIndex,
			XAdvance: fixedToFloat(g.Advance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
	}
	return result
}
