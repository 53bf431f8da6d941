package textedit

import (
	"sort"

	"github.com/gogpu/textedit/text"
)

// Line is a visual line.
//
// [GlyphStart, GlyphEnd) are the glyphs the line consumes, trailing
// whitespace at a wrap included and the paragraph's newline glyph
// excluded. Width covers the visible glyphs only. X is the alignment
// offset and Y the top of the line.
type Line struct {
	Paragraph            int
	GlyphStart, GlyphEnd int
	X, Y                 float64
	Width, Height        float64
	Ascent               float64
	Direction            text.Direction
}

// Baseline returns the y coordinate of the line's baseline.
func (l Line) Baseline() float64 { return l.Y + l.Ascent }

// Lines returns the visual lines. The slice must not be modified.
func (d *Document) Lines() []Line { return d.lines }

// TextExtents returns the width of the widest line and the total height.
func (d *Document) TextExtents() Size { return d.extents }

// WordWrap reports whether lines wrap at the available width.
func (d *Document) WordWrap() bool { return d.wordWrap }

// SetWordWrap enables or disables wrapping.
func (d *Document) SetWordWrap(wrap bool) {
	if wrap == d.wordWrap {
		return
	}
	d.wordWrap = wrap
	d.layout()
}

// AvailableWidth returns the width lines wrap at.
func (d *Document) AvailableWidth() float64 { return d.width }

// SetAvailableWidth sets the width lines wrap at and are aligned in.
// A width of zero or less disables wrapping.
func (d *Document) SetAvailableWidth(w float64) {
	if w == d.width {
		return
	}
	d.width = w
	d.layout()
}

// Alignment returns the horizontal alignment of lines.
func (d *Document) Alignment() Alignment { return d.alignment }

// SetAlignment sets the horizontal alignment of lines.
func (d *Document) SetAlignment(a Alignment) {
	if a == d.alignment {
		return
	}
	d.alignment = a
	d.layout()
}

// layout breaks every paragraph into lines and notifies listeners.
func (d *Document) layout() {
	d.lines = make([]Line, 0, len(d.lines))
	wrap := d.wordWrap && d.width > 0

	y := 0.0
	for p, para := range d.paras {
		if para.GlyphStart == para.GlyphEnd {
			l := d.newLine(p, para.GlyphStart, para.GlyphEnd, false)
			l.Y = y
			y += l.Height
			d.lines = append(d.lines, l)
			continue
		}
		for start := para.GlyphStart; start < para.GlyphEnd; {
			end := para.GlyphEnd
			if wrap {
				end = d.breakLine(start, para.GlyphEnd, d.width)
			}
			l := d.newLine(p, start, end, end < para.GlyphEnd)
			l.Y = y
			y += l.Height
			d.lines = append(d.lines, l)
			start = end
		}
	}

	// An empty document, or one ending in a newline, has an empty last
	// line for the caret.
	if n := len(d.glyphs); n == 0 || d.glyphs[n-1].IsLineBreak() {
		m := d.defaultFont().Metrics()
		d.lines = append(d.lines, Line{
			Paragraph:  len(d.paras),
			GlyphStart: n,
			GlyphEnd:   n,
			Y:          y,
			Height:     m.LineHeight(),
			Ascent:     m.Ascent,
			Direction:  text.DirectionLTR,
		})
		y += m.LineHeight()
	}

	width := 0.0
	for _, l := range d.lines {
		width = max(width, l.Width)
	}
	d.extents = Size{W: width, H: y}
	d.align()

	d.onLayout.emit(LayoutInfo{Extents: d.extents, Lines: len(d.lines)})
}

// breakLine returns the end of the line starting at glyph start, given the
// paragraph's glyph end. It always consumes at least one glyph.
func (d *Document) breakLine(start, end int, width float64) int {
	limit := d.glyphs[start].X + width
	i := start + sort.Search(end-start, func(k int) bool {
		return d.glyphs[start+k].Right() > limit
	})
	if i >= end {
		return end
	}

	// Break around a whitespace run that overflows.
	if d.glyphs[i].IsWhitespace() {
		for i < end && d.glyphs[i].IsWhitespace() {
			i++
		}
		return i
	}

	// Break after the last whitespace before the overflowing glyph.
	for j := i - 1; j >= start; j-- {
		if d.glyphs[j].IsWhitespace() {
			return j + 1
		}
	}

	// No whitespace: break at the overflowing cluster, or after it when
	// it is the first on the line.
	cluster := d.glyphs[i].Start
	c := i
	for c > start && d.glyphs[c-1].Start == cluster {
		c--
	}
	if c > start {
		return c
	}
	for i < end && d.glyphs[i].Start == cluster {
		i++
	}
	return i
}

// newLine measures the glyphs [start, end) of paragraph p. When wrapped,
// trailing whitespace is left out of the width.
func (d *Document) newLine(p, start, end int, wrapped bool) Line {
	l := Line{
		Paragraph:  p,
		GlyphStart: start,
		GlyphEnd:   end,
		Direction:  text.DirectionLTR,
	}

	visible := end
	if wrapped {
		for visible > start && d.glyphs[visible-1].IsWhitespace() {
			visible--
		}
	}
	if visible > start {
		l.Width = d.glyphs[visible-1].Right() - d.glyphs[start].X
	}

	for i := start; i < end; i++ {
		if g := &d.glyphs[i]; g.Direction.IsStrong() {
			l.Direction = g.Direction
			break
		}
	}

	metricsFrom := func(f text.Font) {
		m := f.Metrics()
		l.Height = max(l.Height, m.LineHeight())
		l.Ascent = max(l.Ascent, m.Ascent)
	}
	for i := start; i < end; i++ {
		metricsFrom(d.glyphs[i].Font)
	}
	if start == end {
		if end < len(d.glyphs) {
			metricsFrom(d.glyphs[end].Font)
		} else {
			metricsFrom(d.defaultFont())
		}
	}
	return l
}

// align sets the X offset of every line.
func (d *Document) align() {
	container := d.width
	if container <= 0 {
		container = d.extents.W
	}
	for i := range d.lines {
		l := &d.lines[i]
		a := d.alignment
		if l.Direction == text.DirectionRTL {
			switch a {
			case AlignLeft:
				a = AlignRight
			case AlignRight:
				a = AlignLeft
			}
		}
		switch a {
		case AlignCenter:
			l.X = (container - l.Width) / 2
		case AlignRight:
			l.X = container - l.Width
		default:
			l.X = 0
		}
		l.X = max(l.X, 0)
	}
}

// lineFor returns the index of the line holding glyph position pos.
func (d *Document) lineFor(pos int) int {
	i := sort.Search(len(d.lines), func(k int) bool { return d.lines[k].GlyphStart > pos }) - 1
	return max(i, 0)
}

// lineEnd returns the last caret position on line li. On a wrapped line
// the caret stops before the trailing whitespace, because the position
// after it belongs to the next line.
func (d *Document) lineEnd(li int) int {
	l := d.lines[li]
	last := li+1 == len(d.lines) || d.lines[li+1].Paragraph != l.Paragraph
	if !last && l.GlyphEnd > l.GlyphStart && d.glyphs[l.GlyphEnd-1].IsWhitespace() {
		return l.GlyphEnd - 1
	}
	return l.GlyphEnd
}

// visualX returns the x of every glyph of line l, relative to the line's
// alignment offset. Runs shaped right-to-left are mirrored within their
// span.
func (d *Document) visualX(l Line) []float64 {
	n := l.GlyphEnd - l.GlyphStart
	xs := make([]float64, n)
	if n == 0 {
		return xs
	}
	origin := d.glyphs[l.GlyphStart].X
	for k := range n {
		xs[k] = d.glyphs[l.GlyphStart+k].X - origin
	}
	for a := 0; a < n; {
		if d.glyphs[l.GlyphStart+a].RunDirection != text.DirectionRTL {
			a++
			continue
		}
		b := a
		for b < n && d.glyphs[l.GlyphStart+b].RunDirection == text.DirectionRTL {
			b++
		}
		left := xs[a]
		right := xs[b-1] + d.glyphs[l.GlyphStart+b-1].Advance
		for k := a; k < b; k++ {
			xs[k] = left + right - (xs[k] + d.glyphs[l.GlyphStart+k].Advance)
		}
		a = b
	}
	return xs
}

// caretX returns the x of the caret at pos on line li, alignment included.
func (d *Document) caretX(li, pos int) float64 {
	l := d.lines[li]
	if l.GlyphEnd == l.GlyphStart {
		return l.X
	}
	xs := d.visualX(l)
	if pos < l.GlyphEnd {
		k := max(pos-l.GlyphStart, 0)
		g := &d.glyphs[l.GlyphStart+k]
		if g.RunDirection == text.DirectionRTL {
			return l.X + xs[k] + g.Advance
		}
		return l.X + xs[k]
	}
	k := l.GlyphEnd - 1 - l.GlyphStart
	g := &d.glyphs[l.GlyphEnd-1]
	if g.RunDirection == text.DirectionRTL {
		return l.X + xs[k]
	}
	return l.X + xs[k] + g.Advance
}

// CaretRect returns the rectangle the caret is drawn in.
func (d *Document) CaretRect() Rect {
	pos := d.cursor.position
	li := d.lineFor(pos)
	l := d.lines[li]
	x := d.caretX(li, pos)
	return Rect{
		Min: Pt(x, l.Y),
		Max: Pt(x+d.cursor.width, l.Y+l.Height),
	}
}

// HitTest returns the caret position closest to pt.
func (d *Document) HitTest(pt Point) int {
	li := sort.Search(len(d.lines), func(k int) bool {
		return d.lines[k].Y+d.lines[k].Height > pt.Y
	})
	li = min(li, len(d.lines)-1)
	return d.hitTestLine(li, pt.X)
}

// hitTestLine returns the caret position on line li closest to x.
func (d *Document) hitTestLine(li int, x float64) int {
	l := d.lines[li]
	end := d.lineEnd(li)
	if l.GlyphEnd == l.GlyphStart {
		return l.GlyphStart
	}
	x -= l.X
	xs := d.visualX(l)

	// Index of the glyph nearest x on each side, for positions outside
	// every glyph.
	leftmost, rightmost := 0, 0
	for k := range xs {
		g := &d.glyphs[l.GlyphStart+k]
		if xs[k] < xs[leftmost] {
			leftmost = k
		}
		if xs[k]+g.Advance > xs[rightmost]+d.glyphs[l.GlyphStart+rightmost].Advance {
			rightmost = k
		}
		if g.Advance <= 0 || x < xs[k] || x >= xs[k]+g.Advance {
			continue
		}
		before := x < xs[k]+g.Advance/2
		if g.RunDirection == text.DirectionRTL {
			before = !before
		}
		if before {
			return min(l.GlyphStart+k, end)
		}
		return min(l.GlyphStart+k+1, end)
	}

	k := rightmost
	after := true
	if x < xs[leftmost] {
		k, after = leftmost, false
	}
	if d.glyphs[l.GlyphStart+k].RunDirection == text.DirectionRTL {
		after = !after
	}
	if after {
		return min(l.GlyphStart+k+1, end)
	}
	return min(l.GlyphStart+k, end)
}
