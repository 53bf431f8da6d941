package textedit

import (
	"time"

	"github.com/gogpu/textedit/style"
)

// Caret blink timing. The caret is fully visible for blinkVisible after
// each move, fades out over blinkFade, then stays hidden until the cycle
// restarts.
const (
	blinkVisible = 500 * time.Millisecond
	blinkFade    = 250 * time.Millisecond
	blinkCycle   = time.Second

	// BlinkInterval is the period at which a host should repaint the caret
	// while the document has focus.
	BlinkInterval = 40 * time.Millisecond

	// DefaultCursorWidth is the width of the caret in pixels.
	DefaultCursorWidth = 2.0
)

// Cursor is the caret and selection of a Document. Position and anchor are
// glyph indices in [0, GlyphCount]; the selection is the range between
// them.
type Cursor struct {
	doc      *Document
	position int
	anchor   int
	paint    style.Paint
	width    float64
	moved    time.Time

	onPosition   event[int]
	onAnchor     event[int]
	onAppearance event[struct{}]
}

func newCursor(d *Document) *Cursor {
	return &Cursor{
		doc:   d,
		paint: style.Solid(style.Black),
		width: DefaultCursorWidth,
		moved: d.clock(),
	}
}

// Position returns the glyph index of the caret.
func (c *Cursor) Position() int { return c.position }

// Anchor returns the glyph index where the selection started.
func (c *Cursor) Anchor() int { return c.anchor }

// HasSelection reports whether the position and anchor differ.
func (c *Cursor) HasSelection() bool { return c.position != c.anchor }

// Selection returns the selected glyph range [start, end).
func (c *Cursor) Selection() (start, end int) {
	return min(c.position, c.anchor), max(c.position, c.anchor)
}

// SetPosition moves the caret to glyph index p. With moveAnchor the anchor
// follows, collapsing the selection.
func (c *Cursor) SetPosition(p int, moveAnchor bool) error {
	if n := c.doc.GlyphCount(); p < 0 || p > n {
		return &OutOfRangeError{Op: "set position", Index: p, Limit: n}
	}
	anchor := c.anchor
	if moveAnchor {
		anchor = p
	}
	c.set(p, anchor)
	return nil
}

// SetAnchor moves the selection anchor to glyph index a.
func (c *Cursor) SetAnchor(a int) error {
	if n := c.doc.GlyphCount(); a < 0 || a > n {
		return &OutOfRangeError{Op: "set anchor", Index: a, Limit: n}
	}
	c.set(c.position, a)
	return nil
}

// Paint returns the caret paint.
func (c *Cursor) Paint() style.Paint { return c.paint }

// SetPaint sets the caret paint.
func (c *Cursor) SetPaint(p style.Paint) {
	if c.paint.Equal(p) {
		return
	}
	c.paint = p
	c.onAppearance.emit(struct{}{})
}

// Width returns the caret width.
func (c *Cursor) Width() float64 { return c.width }

// SetWidth sets the caret width.
func (c *Cursor) SetWidth(w float64) {
	if c.width == w {
		return
	}
	c.width = w
	c.onAppearance.emit(struct{}{})
}

// BlinkAlpha returns the caret opacity at now, in [0, 1]. Every position
// change restarts the blink cycle with a fully visible caret.
func (c *Cursor) BlinkAlpha(now time.Time) float64 {
	phase := now.Sub(c.moved) % blinkCycle
	switch {
	case phase < 0:
		return 1
	case phase < blinkVisible:
		return 1
	case phase < blinkVisible+blinkFade:
		return 1 - float64(phase-blinkVisible)/float64(blinkFade)
	default:
		return 0
	}
}

// OnPositionChanged registers fn to be called with the new position after
// every caret move. It returns a function that removes fn.
func (c *Cursor) OnPositionChanged(fn func(position int)) func() {
	return c.onPosition.subscribe(fn)
}

// OnAnchorChanged registers fn to be called with the new anchor after the
// anchor moves.
func (c *Cursor) OnAnchorChanged(fn func(anchor int)) func() {
	return c.onAnchor.subscribe(fn)
}

// OnAppearanceChanged registers fn to be called when the caret paint or
// width changes.
func (c *Cursor) OnAppearanceChanged(fn func()) func() {
	return c.onAppearance.subscribe(func(struct{}) { fn() })
}

// set stores already validated indices and notifies listeners.
func (c *Cursor) set(position, anchor int) {
	posChanged := position != c.position
	anchorChanged := anchor != c.anchor
	c.position, c.anchor = position, anchor
	if posChanged {
		c.moved = c.doc.clock()
		c.onPosition.emit(position)
	}
	if anchorChanged {
		c.onAnchor.emit(anchor)
	}
}

// clamp pulls position and anchor into [0, n].
func (c *Cursor) clamp(n int) {
	c.set(clampInt(c.position, 0, n), clampInt(c.anchor, 0, n))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
