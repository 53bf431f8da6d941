// Package fonttest provides a deterministic monospace font for tests.
//
// Every glyph advances by the same width and the glyph ID of a character
// is its code point, so layout results can be asserted exactly.
package fonttest

import "github.com/gogpu/textedit/text"

// Default geometry of a Font.
const (
	Advance = 10.0
	Ascent  = 16.0
	Descent = 4.0
	Height  = Ascent + Descent
)

// Font is a fake monospace text.Font.
type Font struct {
	id        uint64
	advance   float64
	metrics   text.Metrics
	missing   map[rune]bool
	kern      map[[2]text.GlyphID]float64
	fallback  text.Font
	underline bool
}

// Option configures a Font.
type Option func(*Font)

// WithAdvance sets the advance of every glyph.
func WithAdvance(adv float64) Option {
	return func(f *Font) { f.advance = adv }
}

// WithHeight sets the line height, split 4:1 between ascent and descent.
func WithHeight(h float64) Option {
	return func(f *Font) { f.metrics = text.Metrics{Ascent: h * 0.8, Descent: h * 0.2} }
}

// WithMissing makes the font report no glyph for rs.
func WithMissing(rs ...rune) Option {
	return func(f *Font) {
		for _, r := range rs {
			f.missing[r] = true
		}
	}
}

// WithKern adds a kerning adjustment between two characters.
func WithKern(left, right rune, k float64) Option {
	return func(f *Font) { f.kern[[2]text.GlyphID{gid(left), gid(right)}] = k }
}

// WithFallback sets the fallback font.
func WithFallback(fb text.Font) Option {
	return func(f *Font) { f.fallback = fb }
}

// WithUnderline underlines the font.
func WithUnderline() Option {
	return func(f *Font) { f.underline = true }
}

// New creates a Font with advance 10 and line height 20.
func New(opts ...Option) *Font {
	f := &Font{
		id:      text.NewFontID(),
		advance: Advance,
		metrics: text.Metrics{Ascent: Ascent, Descent: Descent},
		missing: make(map[rune]bool),
		kern:    make(map[[2]text.GlyphID]float64),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func gid(r rune) text.GlyphID {
	g := text.GlyphID(uint16(r)) //nolint:gosec // truncation is fine for a fake font
	if g == 0 {
		g = 1
	}
	return g
}

func (f *Font) ID() uint64                        { return f.id }
func (f *Font) Size() float64                     { return f.metrics.Ascent + f.metrics.Descent }
func (f *Font) Metrics() text.Metrics             { return f.metrics }
func (f *Font) GlyphAdvance(text.GlyphID) float64 { return f.advance }
func (f *Font) Fallback() text.Font               { return f.fallback }
func (f *Font) Underline() bool                   { return f.underline }
func (f *Font) PasswordMask() rune                { return 0 }

func (f *Font) GlyphIndex(r rune) text.GlyphID {
	if f.missing[r] {
		return 0
	}
	return gid(r)
}

func (f *Font) Kern(left, right text.GlyphID) float64 {
	return f.kern[[2]text.GlyphID{left, right}]
}
