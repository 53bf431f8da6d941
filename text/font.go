package text

import (
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
)

// Font is a sized font as seen by the shaping engine.
//
// Implementations must be immutable: the engine caches shaping results
// keyed by ID and PasswordMask.
type Font interface {
	// ID uniquely identifies the font and size. Use NewFontID to allocate one.
	ID() uint64

	// Size is the font size in pixels per em.
	Size() float64

	// Metrics returns the vertical metrics at Size.
	Metrics() Metrics

	// GlyphIndex returns the glyph for r, or zero if the font has none.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the horizontal advance of gid at Size.
	GlyphAdvance(gid GlyphID) float64

	// Kern returns the kerning adjustment between two glyphs at Size.
	Kern(left, right GlyphID) float64

	// Fallback returns the font to try for characters this font lacks,
	// or nil.
	Fallback() Font

	// Underline reports whether glyphs in this font are underlined.
	Underline() bool

	// PasswordMask returns the character displayed in place of every
	// character, or zero when the font does not mask.
	PasswordMask() rune
}

// GoTextFont is implemented by fonts that can be shaped with HarfBuzz.
type GoTextFont interface {
	GoTextFont() *gotext.Font
}

var lastFontID atomic.Uint64

// NewFontID allocates a process-unique font identifier.
func NewFontID() uint64 {
	return lastFontID.Add(1)
}

// SameFont reports whether two fonts shape identically.
func SameFont(a, b Font) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID() && a.PasswordMask() == b.PasswordMask()
}

// Masked returns f with every character displayed as mask.
// A zero mask returns f unchanged.
func Masked(f Font, mask rune) Font {
	if f == nil || mask == 0 {
		return f
	}
	if m, ok := f.(maskedFont); ok {
		f = m.Font
	}
	return maskedFont{Font: f, mask: mask}
}

// maskedFont substitutes a password mask character.
type maskedFont struct {
	Font
	mask rune
}

func (m maskedFont) PasswordMask() rune { return m.mask }

func (m maskedFont) Fallback() Font {
	return Masked(m.Font.Fallback(), m.mask)
}

func (m maskedFont) GoTextFont() *gotext.Font {
	if g, ok := m.Font.(GoTextFont); ok {
		return g.GoTextFont()
	}
	return nil
}
