package textedit

import (
	"cmp"
	"iter"
	"slices"

	"github.com/gogpu/textedit/style"
	"github.com/gogpu/textedit/text"
)

// RenderGlyph is a glyph ready to be drawn.
type RenderGlyph struct {
	// Index is the glyph's index in the document.
	Index int
	Glyph text.Glyph

	// Pos is the glyph origin on the baseline, offsets and alignment
	// applied.
	Pos Point

	// Text, Background and Outline are the effective paints of the glyph's
	// style. Text is never unset.
	Text, Background, Outline style.Paint

	// GradientPos is the glyph's position along a gradient text paint, in
	// [0, 1] across the document extents.
	GradientPos float64

	// Color is Text sampled at GradientPos.
	Color style.RGBA

	Selected  bool
	Underline bool
	Mnemonic  bool
}

// RenderLine is a visual line ready to be drawn.
type RenderLine struct {
	Line   Line
	Glyphs []RenderGlyph
}

// RenderLines yields every visual line with its drawable glyphs, in
// logical order. Ignorable glyphs and newlines are skipped.
func (d *Document) RenderLines() iter.Seq[RenderLine] {
	return func(yield func(RenderLine) bool) {
		selStart, selEnd := d.cursor.Selection()
		tags := newTagWalker(d.buf, 0, d.buf.Len())

		for _, l := range d.lines {
			rl := RenderLine{Line: l}
			xs := d.visualX(l)
			base := l.Baseline()
			for k, x := range xs {
				i := l.GlyphStart + k
				g := d.glyphs[i]
				if g.Has(text.GlyphIgnorable) || g.IsLineBreak() {
					continue
				}
				offset, _ := d.FromGlyph(i)
				st := d.styleFor(tags.at(offset))
				paint := st.Text.Or(style.Solid(style.Black))

				rg := RenderGlyph{
					Index:      i,
					Glyph:      g,
					Pos:        Pt(l.X+x+g.OffsetX, base-g.OffsetY),
					Text:       paint,
					Background: st.Background,
					Outline:    st.Outline,
					Selected:   i >= selStart && i < selEnd,
					Underline:  g.Has(text.GlyphUnderline),
					Mnemonic:   g.Has(text.GlyphMnemonic),
				}
				rg.GradientPos = d.gradientPos(paint, rg.Pos.X+g.Advance/2, l.Y+l.Height/2)
				rg.Color = paint.At(rg.GradientPos)
				rl.Glyphs = append(rl.Glyphs, rg)
			}
			if !yield(rl) {
				return
			}
		}
	}
}

// gradientPos maps a point to a position along p's gradient.
func (d *Document) gradientPos(p style.Paint, x, y float64) float64 {
	g, ok := p.Gradient()
	if !ok {
		return 0
	}
	size := d.extents.W
	v := x
	if g.Direction == style.GradientVertical {
		size, v = d.extents.H, y
	}
	if size <= 0 {
		return 0
	}
	return max(0, min(v/size, 1))
}

// SelectionRects returns the rectangles covering the selection, one per
// contiguous visual span.
func (d *Document) SelectionRects() []Rect {
	start, end := d.cursor.Selection()
	if start == end {
		return nil
	}
	var rects []Rect
	for _, l := range d.lines {
		if l.GlyphEnd <= start || l.GlyphStart >= end {
			continue
		}
		xs := d.visualX(l)
		var spans [][2]float64
		for k, x := range xs {
			i := l.GlyphStart + k
			if i < start || i >= end {
				continue
			}
			spans = append(spans, [2]float64{x, x + d.glyphs[i].Advance})
		}
		for _, s := range mergeSpans(spans) {
			rects = append(rects, Rect{
				Min: Pt(l.X+s[0], l.Y),
				Max: Pt(l.X+s[1], l.Y+l.Height),
			})
		}
	}
	return rects
}

// mergeSpans sorts spans and joins the ones that touch.
func mergeSpans(spans [][2]float64) [][2]float64 {
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b [2]float64) int { return cmp.Compare(a[0], b[0]) })
	out := [][2]float64{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s[0] <= last[1] {
			last[1] = max(last[1], s[1])
			continue
		}
		out = append(out, s)
	}
	return out
}

// MinimumSize returns the size the document needs to show its hint on one
// line of the default font.
func (d *Document) MinimumSize() Size {
	f := d.defaultFont()
	h := f.Metrics().LineHeight()
	if d.hint == "" {
		return Size{H: h}
	}
	w := 0.0
	for _, g := range d.engine.Shape(d.hint, func(int) text.Font { return f }) {
		w += g.Advance
		h = max(h, g.Font.Metrics().LineHeight())
	}
	return Size{W: w, H: h}
}
