package textedit

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/gogpu/textedit/buffer"
	"github.com/gogpu/textedit/style"
	"github.com/gogpu/textedit/text"
)

// Paragraph is a newline-delimited unit of text and its glyphs.
//
// The text range includes the terminating newline. The glyph range
// excludes the newline glyph, which sits at index GlyphEnd. Glyph source
// ranges are relative to TextStart.
type Paragraph struct {
	TextStart, TextEnd   int
	GlyphStart, GlyphEnd int
}

// LayoutInfo describes a finished layout.
type LayoutInfo struct {
	Extents Size
	Lines   int
}

// Document is a styled, editable text laid out into glyphs and lines.
//
// A Document keeps three coordinate spaces in sync: byte offsets into the
// text, glyph indices and visual positions. Every edit reshapes the
// affected paragraphs, re-wraps the lines and clamps the cursor.
//
// Document is not safe for concurrent use.
type Document struct {
	registry     *style.Registry
	engine       *text.Engine
	font         text.Font
	defaultStyle style.Style
	buf          *buffer.Buffer

	glyphs  []text.Glyph
	paras   []Paragraph
	lines   []Line
	extents Size
	cursor  *Cursor

	singleLine bool
	wordWrap   bool
	readOnly   bool
	password   rune
	alignment  Alignment
	width      float64
	hint       string
	clock      func() time.Time

	// lastPara caches the paragraph found by the previous lookup.
	lastPara   int
	rebuilding bool

	onLayout event[LayoutInfo]
	onText   event[struct{}]
}

// New creates an empty document that shapes untagged text with font.
// font must not be nil.
func New(font text.Font, opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = style.NewRegistry()
	}
	if o.engine == nil {
		o.engine = text.NewEngine()
	}

	d := &Document{
		registry:     o.registry,
		engine:       o.engine,
		font:         font,
		defaultStyle: o.defaultStyle,
		buf:          buffer.New(o.registry),
		singleLine:   o.singleLine,
		wordWrap:     o.wordWrap,
		readOnly:     o.readOnly,
		password:     o.password,
		alignment:    o.alignment,
		width:        o.width,
		clock:        o.clock,
		lastPara:     -1,
	}
	d.cursor = newCursor(d)
	d.layout()
	return d
}

// Text returns the document text.
func (d *Document) Text() string { return d.buf.String() }

// Len returns the length of the text in bytes.
func (d *Document) Len() int { return d.buf.Len() }

// GlyphCount returns the number of glyphs, newline glyphs included.
func (d *Document) GlyphCount() int { return len(d.glyphs) }

// Glyph returns the glyph at index i. Its source range is relative to its
// paragraph; use FromGlyph for document offsets.
func (d *Document) Glyph(i int) text.Glyph { return d.glyphs[i] }

// Glyphs returns all glyphs in logical order. The slice must not be
// modified.
func (d *Document) Glyphs() []text.Glyph { return d.glyphs }

// Paragraphs returns the paragraph index. The slice must not be modified.
func (d *Document) Paragraphs() []Paragraph { return d.paras }

// Cursor returns the document's cursor.
func (d *Document) Cursor() *Cursor { return d.cursor }

// Registry returns the style registry.
func (d *Document) Registry() *style.Registry { return d.registry }

// Engine returns the shaping engine.
func (d *Document) Engine() *text.Engine { return d.engine }

// Runs returns the style runs of the text.
func (d *Document) Runs() []buffer.Run {
	return slices.Collect(d.buf.Runs())
}

// Font returns the font of untagged text.
func (d *Document) Font() text.Font { return d.font }

// SetFont changes the font of untagged text and reshapes everything.
func (d *Document) SetFont(f text.Font) {
	if text.SameFont(f, d.font) {
		return
	}
	d.font = f
	d.rebuildAll()
}

// DefaultStyle returns the style of untagged text.
func (d *Document) DefaultStyle() style.Style { return d.defaultStyle }

// SetDefaultStyle changes the style of untagged text and reshapes
// everything.
func (d *Document) SetDefaultStyle(s style.Style) {
	if s.Equal(d.defaultStyle) {
		return
	}
	d.defaultStyle = s
	d.rebuildAll()
}

// Password returns the password mask, or zero when the document shows its
// text.
func (d *Document) Password() rune { return d.password }

// SetPassword masks every character with mask. Zero shows the text again.
func (d *Document) SetPassword(mask rune) {
	if mask == d.password {
		return
	}
	d.password = mask
	d.rebuildAll()
}

// SingleLine reports whether the document is limited to one line.
func (d *Document) SingleLine() bool { return d.singleLine }

// ReadOnly reports whether user edits are rejected.
func (d *Document) ReadOnly() bool { return d.readOnly }

// SetReadOnly enables or disables user edits.
func (d *Document) SetReadOnly(readOnly bool) { d.readOnly = readOnly }

// Hint returns the text used to compute the minimum size.
func (d *Document) Hint() string { return d.hint }

// SetHint sets the text whose extent MinimumSize reports.
func (d *Document) SetHint(hint string) { d.hint = hint }

// OnTextChanged registers fn to be called after every text change.
// It returns a function that removes fn.
func (d *Document) OnTextChanged(fn func()) func() {
	return d.onText.subscribe(func(struct{}) { fn() })
}

// OnLayoutChanged registers fn to be called after every layout.
func (d *Document) OnLayoutChanged(fn func(LayoutInfo)) func() {
	return d.onLayout.subscribe(fn)
}

// ToGlyph converts a text offset into a glyph index.
//
// It returns the glyph whose source contains offset. An offset inside a
// paragraph that no glyph covers maps past the paragraph's newline glyph.
// Offsets at or past the end map to GlyphCount.
func (d *Document) ToGlyph(offset int) int {
	if offset < 0 {
		Logger().Debug("textedit: clamped text offset", "offset", offset)
		offset = 0
	}
	if offset >= d.buf.Len() || len(d.paras) == 0 {
		return len(d.glyphs)
	}
	p := d.paraForText(offset)
	para := d.paras[p]
	rel := offset - para.TextStart
	gs := d.glyphs[para.GlyphStart:d.glyphLimit(p)]
	i := sort.Search(len(gs), func(i int) bool { return gs[i].End > rel })
	return para.GlyphStart + i
}

// FromGlyph returns the text range [start, end) of glyph i. For
// i == GlyphCount both are the text length.
func (d *Document) FromGlyph(i int) (start, end int) {
	if i < 0 {
		Logger().Debug("textedit: clamped glyph index", "index", i)
		i = 0
	}
	if i >= len(d.glyphs) {
		n := d.buf.Len()
		return n, n
	}
	p := d.paraForGlyph(i)
	base := d.paras[p].TextStart
	return base + d.glyphs[i].Start, base + d.glyphs[i].End
}

// glyphLimit returns the first glyph index after paragraph p, newline
// glyph included.
func (d *Document) glyphLimit(p int) int {
	if p+1 < len(d.paras) {
		return d.paras[p+1].GlyphStart
	}
	return len(d.glyphs)
}

// hasBreak reports whether paragraph p ends with a newline.
func (d *Document) hasBreak(p int) bool {
	return d.paras[p].GlyphEnd < d.glyphLimit(p)
}

// paraForText returns the last paragraph starting at or before offset.
func (d *Document) paraForText(offset int) int {
	if p := d.lastPara; p >= 0 && p < len(d.paras) &&
		d.paras[p].TextStart <= offset && offset < d.paras[p].TextEnd {
		return p
	}
	p := sort.Search(len(d.paras), func(i int) bool { return d.paras[i].TextStart > offset }) - 1
	p = max(p, 0)
	d.lastPara = p
	return p
}

// paraForGlyph returns the paragraph owning glyph i.
func (d *Document) paraForGlyph(i int) int {
	if p := d.lastPara; p >= 0 && p < len(d.paras) &&
		d.paras[p].GlyphStart <= i && i < d.glyphLimit(p) {
		return p
	}
	p := sort.Search(len(d.paras), func(k int) bool { return d.paras[k].GlyphStart > i }) - 1
	p = max(p, 0)
	d.lastPara = p
	return p
}

// styleFor returns the effective style of tag.
func (d *Document) styleFor(tag style.ID) style.Style {
	s, ok := d.registry.Lookup(tag)
	if !ok {
		return d.defaultStyle
	}
	return s.Merge(d.defaultStyle)
}

// fontFor returns the font text tagged with tag is shaped with.
func (d *Document) fontFor(tag style.ID) text.Font {
	f := d.styleFor(tag).Font
	if f == nil {
		f = d.font
	}
	if d.password != 0 {
		f = text.Masked(f, d.password)
	}
	return f
}

// defaultFont returns the font of untagged text.
func (d *Document) defaultFont() text.Font {
	return d.fontFor(style.None)
}

// rebuildAll reshapes every paragraph.
func (d *Document) rebuildAll() {
	n := d.buf.Len()
	d.rebuild(0, n, n)
	d.cursor.clamp(len(d.glyphs))
}

// rebuild reshapes the paragraphs touched by replacing the old text range
// [start, oldEnd) with newLen bytes, which the buffer already holds, then
// lays out again.
func (d *Document) rebuild(start, oldEnd, newLen int) {
	d.rebuilding = true
	defer func() { d.rebuilding = false }()
	d.lastPara = -1

	oldLen := 0
	if n := len(d.paras); n > 0 {
		oldLen = d.paras[n-1].TextEnd
	}
	delta := newLen - (oldEnd - start)

	pi := d.paraAtEdit(start, oldLen)
	pj := max(d.paraAtEdit(oldEnd, oldLen), pi)

	rs, re := oldLen, oldLen
	gs, ge := len(d.glyphs), len(d.glyphs)
	pe := len(d.paras)
	if pi < len(d.paras) {
		rs, gs = d.paras[pi].TextStart, d.paras[pi].GlyphStart
	}
	if pj < len(d.paras) {
		re, ge, pe = d.paras[pj].TextEnd, d.glyphLimit(pj), pj+1
	}

	var (
		newParas  []Paragraph
		newGlyphs []text.Glyph
	)
	src := d.buf.Slice(rs, re+delta)
	for off := 0; off < len(src); {
		end := len(src)
		if k := strings.IndexByte(src[off:], '\n'); k >= 0 {
			end = off + k + 1
		}
		glyphs := d.shapeParagraph(rs+off, rs+end)
		para := Paragraph{
			TextStart:  rs + off,
			TextEnd:    rs + end,
			GlyphStart: gs + len(newGlyphs),
			GlyphEnd:   gs + len(newGlyphs) + len(glyphs),
		}
		if n := len(glyphs); n > 0 && glyphs[n-1].IsLineBreak() {
			para.GlyphEnd--
		}
		newParas = append(newParas, para)
		newGlyphs = append(newGlyphs, glyphs...)
		off = end
	}

	glyphDelta := len(newGlyphs) - (ge - gs)
	d.glyphs = slices.Replace(d.glyphs, gs, ge, newGlyphs...)
	d.paras = slices.Replace(d.paras, pi, pe, newParas...)
	if len(d.paras) == 0 {
		d.glyphs, d.paras = nil, nil
	}
	for k := pi + len(newParas); k < len(d.paras); k++ {
		d.paras[k].TextStart += delta
		d.paras[k].TextEnd += delta
		d.paras[k].GlyphStart += glyphDelta
		d.paras[k].GlyphEnd += glyphDelta
	}

	Logger().Debug("textedit: rebuilt paragraphs",
		"removed", pe-pi, "shaped", len(newParas), "glyphs", len(d.glyphs))
	d.layout()
}

// paraAtEdit returns the paragraph an edit at offset touches: the one
// containing offset, the last one when offset is the end of a paragraph
// without newline, or len(paras) when offset follows a final newline.
func (d *Document) paraAtEdit(offset, textLen int) int {
	n := len(d.paras)
	if n == 0 {
		return 0
	}
	if offset >= textLen {
		if d.hasBreak(n - 1) {
			return n
		}
		return n - 1
	}
	return sort.Search(n, func(i int) bool { return d.paras[i].TextEnd > offset })
}

// shapeParagraph shapes the text in [start, end).
func (d *Document) shapeParagraph(start, end int) []text.Glyph {
	tags := newTagWalker(d.buf, start, end)
	fonts := make(map[style.ID]text.Font)
	return d.engine.Shape(d.buf.Slice(start, end), func(offset int) text.Font {
		tag := tags.at(start + offset)
		f, ok := fonts[tag]
		if !ok {
			f = d.fontFor(tag)
			fonts[tag] = f
		}
		return f
	})
}

// tagWalker looks up tags for offsets that mostly increase.
type tagWalker struct {
	runs []buffer.Run
	k    int
}

// newTagWalker collects the runs overlapping [start, end).
func newTagWalker(b *buffer.Buffer, start, end int) *tagWalker {
	w := &tagWalker{}
	for r := range b.Runs() {
		if r.End > start && r.Start < end {
			w.runs = append(w.runs, r)
		}
	}
	return w
}

func (w *tagWalker) at(offset int) style.ID {
	if len(w.runs) == 0 {
		return style.None
	}
	for w.k+1 < len(w.runs) && offset >= w.runs[w.k].End {
		w.k++
	}
	for w.k > 0 && offset < w.runs[w.k].Start {
		w.k--
	}
	return w.runs[w.k].Tag
}
