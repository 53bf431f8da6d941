package textedit

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/textedit/internal/fonttest"
	"github.com/gogpu/textedit/style"
	"github.com/gogpu/textedit/text"
)

func testEngine() *text.Engine {
	return text.NewEngine(text.WithShaper(text.BuiltinShaper{}), text.WithCache(0))
}

// newDoc creates a document using a fonttest font and sets its text.
func newDoc(t *testing.T, s string, opts ...Option) *Document {
	t.Helper()
	return newDocWithFont(t, fonttest.New(), s, opts...)
}

func newDocWithFont(t *testing.T, f text.Font, s string, opts ...Option) *Document {
	t.Helper()
	d := New(f, append([]Option{WithEngine(testEngine())}, opts...)...)
	if s != "" {
		if err := d.SetText(s); err != nil {
			t.Fatalf("SetText(%q) = %v", s, err)
		}
	}
	return d
}

// checkDocument verifies the paragraph index and glyph coverage.
func checkDocument(t *testing.T, d *Document) {
	t.Helper()
	pos, glyph := 0, 0
	for p, para := range d.paras {
		if para.TextStart != pos {
			t.Fatalf("paragraph %d TextStart = %d, want %d", p, para.TextStart, pos)
		}
		if para.GlyphStart != glyph {
			t.Fatalf("paragraph %d GlyphStart = %d, want %d", p, para.GlyphStart, glyph)
		}
		rel := 0
		for i := para.GlyphStart; i < d.glyphLimit(p); i++ {
			g := d.glyphs[i]
			if i > para.GlyphStart && g.Start == d.glyphs[i-1].Start {
				continue
			}
			if g.Start != rel {
				t.Fatalf("glyph %d Start = %d, want %d", i, g.Start, rel)
			}
			rel = g.End
		}
		if rel != para.TextEnd-para.TextStart {
			t.Fatalf("paragraph %d glyphs cover %d bytes, want %d", p, rel, para.TextEnd-para.TextStart)
		}
		pos, glyph = para.TextEnd, d.glyphLimit(p)
	}
	if pos != d.Len() || glyph != d.GlyphCount() {
		t.Fatalf("paragraphs end at (%d, %d), want (%d, %d)", pos, glyph, d.Len(), d.GlyphCount())
	}
	if p := d.cursor.Position(); p < 0 || p > d.GlyphCount() {
		t.Fatalf("cursor position %d outside [0, %d]", p, d.GlyphCount())
	}
	if a := d.cursor.Anchor(); a < 0 || a > d.GlyphCount() {
		t.Fatalf("cursor anchor %d outside [0, %d]", a, d.GlyphCount())
	}
}

func TestNew_Empty(t *testing.T) {
	d := newDoc(t, "")
	if d.GlyphCount() != 0 || d.Len() != 0 {
		t.Errorf("empty document has %d glyphs, %d bytes", d.GlyphCount(), d.Len())
	}
	if got := len(d.Lines()); got != 1 {
		t.Fatalf("len(Lines()) = %d, want 1", got)
	}
	if got := d.TextExtents(); got != (Size{W: 0, H: fonttest.Height}) {
		t.Errorf("TextExtents() = %v, want {0 %v}", got, fonttest.Height)
	}
	if got := d.ToGlyph(0); got != 0 {
		t.Errorf("ToGlyph(0) = %d, want 0", got)
	}
	if s, e := d.FromGlyph(0); s != 0 || e != 0 {
		t.Errorf("FromGlyph(0) = (%d, %d), want (0, 0)", s, e)
	}
}

func TestInsertIntoSingleLine(t *testing.T) {
	d := newDoc(t, "", WithSingleLine(true))
	if err := d.InsertText("Hello"); err != nil {
		t.Fatalf("InsertText() = %v", err)
	}
	if err := d.Cursor().SetPosition(5, true); err != nil {
		t.Fatalf("SetPosition(5) = %v", err)
	}
	if got := d.Cursor().Position(); got != 5 {
		t.Errorf("Position() = %d, want 5", got)
	}
	if got := d.Text(); got != "Hello" {
		t.Errorf("Text() = %q, want %q", got, "Hello")
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		text string
		want []Paragraph
	}{
		{"", nil},
		{"ab", []Paragraph{{0, 2, 0, 2}}},
		{"ab\n", []Paragraph{{0, 3, 0, 2}}},
		{"ab\ncd", []Paragraph{{0, 3, 0, 2}, {3, 5, 3, 5}}},
		{"\n\n", []Paragraph{{0, 1, 0, 0}, {1, 2, 1, 1}}},
		{"a\n\nb", []Paragraph{{0, 2, 0, 1}, {2, 3, 2, 2}, {3, 4, 3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := newDoc(t, tt.text)
			if got := d.Paragraphs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs() = %v, want %v", got, tt.want)
			}
			checkDocument(t, d)
		})
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	for _, s := range []string{"ab cd", "ab\ncd\n\nxyz", "héllo wörld\n", "aאבb"} {
		t.Run(s, func(t *testing.T) {
			d := newDoc(t, s)
			for i := range d.GlyphCount() {
				start, end := d.FromGlyph(i)
				if start >= end {
					t.Fatalf("FromGlyph(%d) = (%d, %d), want a non-empty range", i, start, end)
				}
				if got := d.ToGlyph(start); got != i {
					t.Errorf("ToGlyph(FromGlyph(%d)) = %d", i, got)
				}
			}
			for off := range d.Len() {
				g := d.ToGlyph(off)
				start, end := d.FromGlyph(g)
				if off < start || off >= end {
					t.Errorf("offset %d maps to glyph %d with range [%d, %d)", off, g, start, end)
				}
			}
			if got := d.ToGlyph(d.Len()); got != d.GlyphCount() {
				t.Errorf("ToGlyph(len) = %d, want %d", got, d.GlyphCount())
			}
			n := d.Len()
			if s, e := d.FromGlyph(d.GlyphCount()); s != n || e != n {
				t.Errorf("FromGlyph(count) = (%d, %d), want (%d, %d)", s, e, n, n)
			}
		})
	}
}

func TestToGlyph_Newline(t *testing.T) {
	d := newDoc(t, "ab\ncd")
	tests := []struct {
		offset int
		want   int
	}{
		{-1, 0},
		{0, 0},
		{2, 2}, // the newline glyph
		{3, 3},
		{5, 5},
		{99, 5},
	}
	for _, tt := range tests {
		if got := d.ToGlyph(tt.offset); got != tt.want {
			t.Errorf("ToGlyph(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestEnterMovesCursorToNewLine(t *testing.T) {
	d := newDoc(t, "ab")
	if err := d.InsertNewline(); err != nil {
		t.Fatalf("InsertNewline() = %v", err)
	}
	if got := d.Cursor().Position(); got != 3 {
		t.Errorf("Position() = %d, want 3", got)
	}
	if got := len(d.Lines()); got != 2 {
		t.Errorf("len(Lines()) = %d, want 2", got)
	}
	r := d.CaretRect()
	if r.Min != Pt(0, fonttest.Height) {
		t.Errorf("CaretRect().Min = %v, want %v", r.Min, Pt(0, fonttest.Height))
	}
}

func TestDeleteText_MapsCursor(t *testing.T) {
	d := newDoc(t, "abcd")
	if err := d.Cursor().SetPosition(3, true); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteText(1, 3); err != nil {
		t.Fatalf("DeleteText() = %v", err)
	}
	if got := d.Text(); got != "ad" {
		t.Errorf("Text() = %q, want %q", got, "ad")
	}
	if got := d.Cursor().Position(); got != 1 {
		t.Errorf("Position() = %d, want 1", got)
	}
	checkDocument(t, d)
}

func TestIncrementalRebuildMatchesFull(t *testing.T) {
	f := fonttest.New()
	d := newDocWithFont(t, f, "ab\ncd")

	edits := []struct {
		name string
		do   func() error
	}{
		{"insert newline mid-paragraph", func() error { return d.InsertTextAt(1, "X\nY") }},
		{"insert at paragraph start", func() error { return d.InsertTextAt(4, "q") }},
		{"join paragraphs", func() error { return d.DeleteText(2, 4) }},
		{"append newline", func() error { return d.InsertTextAt(d.Len(), "\n") }},
		{"append after newline", func() error { return d.InsertTextAt(d.Len(), "tail") }},
		{"delete across paragraphs", func() error { return d.DeleteText(1, d.GlyphCount()-2) }},
		{"insert empty paragraphs", func() error { return d.InsertTextAt(0, "\n\n") }},
		{"delete everything", func() error { return d.DeleteText(0, d.GlyphCount()) }},
		{"insert into empty", func() error { return d.InsertTextAt(0, "new\n") }},
	}
	for _, e := range edits {
		if err := e.do(); err != nil {
			t.Fatalf("%s: %v", e.name, err)
		}
		checkDocument(t, d)

		fresh := newDocWithFont(t, f, d.Text())
		if !slices.Equal(d.Paragraphs(), fresh.Paragraphs()) {
			t.Fatalf("%s: Paragraphs() = %v, want %v", e.name, d.Paragraphs(), fresh.Paragraphs())
		}
		if (d.Glyphs() == nil) != (fresh.Glyphs() == nil) {
			t.Fatalf("%s: Glyphs() nil = %v, full rebuild nil = %v", e.name, d.Glyphs() == nil, fresh.Glyphs() == nil)
		}
		if !reflect.DeepEqual(d.Glyphs(), fresh.Glyphs()) {
			t.Fatalf("%s: glyphs differ from a full rebuild of %q", e.name, d.Text())
		}
		if !reflect.DeepEqual(d.Lines(), fresh.Lines()) {
			t.Fatalf("%s: Lines() = %v, want %v", e.name, d.Lines(), fresh.Lines())
		}
	}
}

func TestCursorClampedAfterEdits(t *testing.T) {
	d := newDoc(t, "hello world")
	if err := d.Cursor().SetPosition(11, false); err != nil {
		t.Fatal(err)
	}
	if err := d.Cursor().SetAnchor(6); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteText(3, 11); err != nil {
		t.Fatal(err)
	}
	c := d.Cursor()
	if c.Position() != 3 || c.Anchor() != 3 {
		t.Errorf("cursor = (%d, %d), want (3, 3)", c.Position(), c.Anchor())
	}
	if err := d.SetText(""); err != nil {
		t.Fatal(err)
	}
	if c.Position() != 0 || c.Anchor() != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", c.Position(), c.Anchor())
	}
}

func TestCursor_OutOfRange(t *testing.T) {
	d := newDoc(t, "abc")
	tests := []struct {
		name string
		err  error
	}{
		{"position past end", d.Cursor().SetPosition(4, true)},
		{"negative position", d.Cursor().SetPosition(-1, true)},
		{"anchor past end", d.Cursor().SetAnchor(5)},
		{"delete past end", d.DeleteText(2, 9)},
		{"insert past end", d.InsertTextAt(9, "x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrOutOfRange) {
				t.Fatalf("err = %v, want ErrOutOfRange", tt.err)
			}
			var oor *OutOfRangeError
			if !errors.As(tt.err, &oor) {
				t.Errorf("err = %T, want *OutOfRangeError", tt.err)
			}
		})
	}
	if got := d.Text(); got != "abc" {
		t.Errorf("Text() = %q after rejected edits", got)
	}
}

func TestReentrantEditRefused(t *testing.T) {
	d := newDoc(t, "")
	var errs []error
	d.OnLayoutChanged(func(LayoutInfo) {
		errs = append(errs, d.InsertText("x"))
	})
	if err := d.SetText("a"); err != nil {
		t.Fatalf("SetText() = %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("layout listener not called")
	}
	for _, err := range errs {
		if !errors.Is(err, ErrReentrantEdit) {
			t.Errorf("InsertText() during rebuild = %v, want ErrReentrantEdit", err)
		}
	}
	if got := d.Text(); got != "a" {
		t.Errorf("Text() = %q, want %q", got, "a")
	}
}

func TestReentrantEditFromReleaseHook(t *testing.T) {
	d := newDoc(t, "abc defg")
	if err := d.ApplyStyle(4, 7, style.Style{Font: fonttest.New(fonttest.WithAdvance(20))}); err != nil {
		t.Fatal(err)
	}

	var errs []error
	d.Registry().OnRelease(func(style.ID) {
		errs = append(errs, d.InsertTextAt(0, "QQ\n"))
	})
	if err := d.DeleteText(4, 7); err != nil {
		t.Fatalf("DeleteText() = %v", err)
	}

	if len(errs) != 1 {
		t.Fatalf("release hook called %d times, want 1", len(errs))
	}
	if !errors.Is(errs[0], ErrReentrantEdit) {
		t.Errorf("InsertTextAt() from release hook = %v, want ErrReentrantEdit", errs[0])
	}
	if got := d.Text(); got != "abc g" {
		t.Errorf("Text() = %q, want %q", got, "abc g")
	}
	checkDocument(t, d)

	// The guard is lifted once the edit completes.
	if err := d.InsertTextAt(0, "x"); err != nil {
		t.Errorf("InsertTextAt() after edit = %v", err)
	}
}

func TestApplyStyle(t *testing.T) {
	wide := fonttest.New(fonttest.WithAdvance(20))
	d := newDoc(t, "abcd")
	reg := d.Registry()

	if err := d.ApplyStyle(1, 3, style.Style{Font: wide}); err != nil {
		t.Fatalf("ApplyStyle() = %v", err)
	}
	checkDocument(t, d)

	wantX := []float64{0, 10, 30, 50}
	for i, g := range d.Glyphs() {
		if g.X != wantX[i] {
			t.Errorf("glyph %d X = %v, want %v", i, g.X, wantX[i])
		}
	}
	runs := d.Runs()
	if len(runs) != 3 {
		t.Fatalf("len(Runs()) = %d, want 3", len(runs))
	}
	id := runs[1].Tag
	if got := reg.RefCount(id); got != 1 {
		t.Errorf("RefCount() = %d, want 1", got)
	}

	// Typing inside the run inherits its style.
	if err := d.Cursor().SetPosition(2, true); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	if got := d.Glyph(2).Advance; got != 20 {
		t.Errorf("inserted glyph Advance = %v, want 20", got)
	}

	// Deleting the styled text releases the style.
	if err := d.DeleteText(1, 4); err != nil {
		t.Fatal(err)
	}
	if got := reg.Len(); got != 0 {
		t.Errorf("Registry().Len() = %d, want 0", got)
	}
	if got := d.Text(); got != "ad" {
		t.Errorf("Text() = %q, want %q", got, "ad")
	}
}

func TestInsertTextStyled(t *testing.T) {
	d := newDoc(t, "ab")
	red := style.Style{Text: style.Solid(style.RGB(1, 0, 0))}
	if err := d.InsertTextStyled("cd", red); err != nil {
		t.Fatal(err)
	}
	runs := d.Runs()
	if len(runs) != 2 || runs[1].Start != 2 || runs[1].End != 4 {
		t.Fatalf("Runs() = %v, want two runs split at 2", runs)
	}
	if got := d.Registry().RefCount(runs[1].Tag); got != 1 {
		t.Errorf("RefCount() = %d, want 1", got)
	}
}

func TestSharedRegistry(t *testing.T) {
	reg := style.NewRegistry()
	red := style.Style{Text: style.Solid(style.RGB(1, 0, 0))}
	a := newDoc(t, "aaa", WithRegistry(reg))
	b := newDoc(t, "bbb", WithRegistry(reg))

	if err := a.ApplyStyle(0, 3, red); err != nil {
		t.Fatal(err)
	}
	if err := b.ApplyStyle(0, 3, red); err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 shared style", reg.Len())
	}
	id := a.Runs()[0].Tag
	if got := reg.RefCount(id); got != 2 {
		t.Errorf("RefCount() = %d, want 2", got)
	}
	if err := a.SetText("plain"); err != nil {
		t.Fatal(err)
	}
	if got := reg.RefCount(id); got != 1 {
		t.Errorf("RefCount() after SetText = %d, want 1", got)
	}
}

func TestPassword(t *testing.T) {
	d := newDoc(t, "secret", WithPassword(0))
	if got := d.Text(); got != "secret" {
		t.Errorf("Text() = %q, want %q", got, "secret")
	}
	for i, g := range d.Glyphs() {
		if g.Rune != DefaultPasswordMask {
			t.Errorf("glyph %d Rune = %q, want %q", i, g.Rune, DefaultPasswordMask)
		}
	}

	d.SetPassword(0)
	if got := d.Glyph(0).Rune; got != 's' {
		t.Errorf("glyph 0 Rune = %q after disabling the mask, want 's'", got)
	}
}

func TestSingleLine_Truncates(t *testing.T) {
	d := newDoc(t, "one\r\ntwo", WithSingleLine(true))
	if got := d.Text(); got != "one" {
		t.Errorf("Text() = %q, want %q", got, "one")
	}
	if err := d.InsertNewline(); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "one" {
		t.Errorf("Text() after InsertNewline = %q, want %q", got, "one")
	}
}

func TestSetText_StripsCarriageReturns(t *testing.T) {
	d := newDoc(t, "a\r\nb")
	if got := d.Text(); got != "a\nb" {
		t.Errorf("Text() = %q, want %q", got, "a\nb")
	}
	if got := d.Cursor().Position(); got != d.GlyphCount() {
		t.Errorf("Position() = %d, want %d", got, d.GlyphCount())
	}
}

func TestListeners(t *testing.T) {
	d := newDoc(t, "")
	var texts, layouts int
	var info LayoutInfo
	stopText := d.OnTextChanged(func() { texts++ })
	d.OnLayoutChanged(func(li LayoutInfo) {
		layouts++
		info = li
	})

	if err := d.InsertText("abc"); err != nil {
		t.Fatal(err)
	}
	if texts != 1 || layouts != 1 {
		t.Errorf("listeners called (%d, %d) times, want (1, 1)", texts, layouts)
	}
	if info.Lines != 1 || info.Extents.W != 30 {
		t.Errorf("LayoutInfo = %+v, want 1 line 30 wide", info)
	}

	stopText()
	if err := d.InsertText("d"); err != nil {
		t.Fatal(err)
	}
	if texts != 1 {
		t.Errorf("text listener called after unsubscribe")
	}

	d.SetAlignment(AlignCenter)
	if layouts != 3 {
		t.Errorf("layout listener called %d times, want 3", layouts)
	}
}

func TestSetFont_Reshapes(t *testing.T) {
	d := newDoc(t, "ab")
	d.SetFont(fonttest.New(fonttest.WithAdvance(7)))
	if got := d.TextExtents().W; got != 14 {
		t.Errorf("TextExtents().W = %v, want 14", got)
	}
}
