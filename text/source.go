package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	data []byte
	font *opentype.Font
	name string

	// bufs pools sfnt.Buffer values; sfnt.Font methods need scratch space
	// that must not be shared between goroutines.
	bufs sync.Pool

	// goText is parsed on first use by GoTextShaper.
	goTextOnce sync.Once
	goText     *gotext.Font
	goTextErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := bytes.Clone(data)
	f, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
		bufs: sync.Pool{New: func() any { return new(sfnt.Buffer) }},
	}
	s.name = s.lookupName()
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

// Face creates a Face at the specified size in pixels per em.
// Faces are cheap; the parsed font is shared.
func (s *FontSource) Face(size float64, opts ...FaceOption) *Face {
	if s == nil {
		panic("text: FontSource is nil; did you check the error from NewFontSource?")
	}
	config := defaultFaceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	f := &Face{
		id:     NewFontID(),
		source: s,
		size:   size,
		ppem:   fixed.Int26_6(size * 64),
		config: config,
	}
	f.metrics = f.loadMetrics()
	return f
}

// goTextFont returns the go-text parse of the font data.
func (s *FontSource) goTextFont() (*gotext.Font, error) {
	s.goTextOnce.Do(func() {
		face, err := gotext.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.goTextErr = fmt.Errorf("%w: shaping: %w", ErrInvalidFont, err)
			return
		}
		s.goText = face.Font
	})
	return s.goText, s.goTextErr
}

func (s *FontSource) lookupName() string {
	buf := s.getBuffer()
	defer s.bufs.Put(buf)
	if name, err := s.font.Name(buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := s.font.Name(buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

func (s *FontSource) getBuffer() *sfnt.Buffer {
	return s.bufs.Get().(*sfnt.Buffer)
}

// Face is a FontSource at a specific size. It implements Font and
// GoTextFont.
//
// Face is safe for concurrent use.
type Face struct {
	id      uint64
	source  *FontSource
	size    float64
	ppem    fixed.Int26_6
	config  faceConfig
	metrics Metrics
}

var _ interface {
	Font
	GoTextFont
} = (*Face)(nil)

// ID implements Font.
func (f *Face) ID() uint64 { return f.id }

// Size implements Font.
func (f *Face) Size() float64 { return f.size }

// Source returns the FontSource the face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Metrics implements Font.
func (f *Face) Metrics() Metrics { return f.metrics }

// GlyphIndex implements Font.
func (f *Face) GlyphIndex(r rune) GlyphID {
	buf := f.source.getBuffer()
	defer f.source.bufs.Put(buf)

	idx, err := f.source.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements Font.
func (f *Face) GlyphAdvance(gid GlyphID) float64 {
	buf := f.source.getBuffer()
	defer f.source.bufs.Put(buf)

	adv, err := f.source.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// Kern implements Font using the font's kern table. Fonts without one
// report zero.
func (f *Face) Kern(left, right GlyphID) float64 {
	if !f.config.kerning {
		return 0
	}
	buf := f.source.getBuffer()
	defer f.source.bufs.Put(buf)

	k, err := f.source.font.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), f.ppem, font.HintingNone)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			Logger().Debug("text: kern lookup failed", "font", f.source.name, "err", err)
		}
		return 0
	}
	return fixedToFloat(k)
}

// Fallback implements Font.
func (f *Face) Fallback() Font { return f.config.fallback }

// Underline implements Font.
func (f *Face) Underline() bool { return f.config.underline }

// PasswordMask implements Font. Faces never mask; see Masked.
func (f *Face) PasswordMask() rune { return 0 }

// GoTextFont implements GoTextFont. It returns nil if go-text cannot
// parse the font data.
func (f *Face) GoTextFont() *gotext.Font {
	gf, err := f.source.goTextFont()
	if err != nil {
		Logger().Warn("text: HarfBuzz shaping unavailable", "font", f.source.name, "err", err)
		return nil
	}
	return gf
}

func (f *Face) loadMetrics() Metrics {
	buf := f.source.getBuffer()
	defer f.source.bufs.Put(buf)

	m, err := f.source.font.Metrics(buf, f.ppem, font.HintingNone)
	if err != nil {
		return Metrics{Ascent: f.size, Descent: f.size / 4}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	gap := fixedToFloat(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return Metrics{Ascent: ascent, Descent: descent, LineGap: gap}
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
