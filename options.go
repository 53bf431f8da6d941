package textedit

import (
	"time"

	"github.com/gogpu/textedit/style"
	"github.com/gogpu/textedit/text"
)

// DefaultPasswordMask is the character shown for every character of a
// password document.
const DefaultPasswordMask = '●'

// Alignment is the horizontal alignment of lines.
type Alignment int

const (
	// AlignLeft aligns lines to the leading edge.
	AlignLeft Alignment = iota
	// AlignCenter centers lines.
	AlignCenter
	// AlignRight aligns lines to the trailing edge.
	AlignRight
)

// String returns a string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return unknownStr
	}
}

const unknownStr = "Unknown"

// Option configures a Document during creation.
//
// Example:
//
//	doc := textedit.New(face,
//	    textedit.WithWordWrap(true),
//	    textedit.WithAvailableWidth(320),
//	)
type Option func(*options)

// options holds optional configuration for Document creation.
type options struct {
	registry     *style.Registry
	engine       *text.Engine
	defaultStyle style.Style
	singleLine   bool
	wordWrap     bool
	readOnly     bool
	password     rune
	alignment    Alignment
	width        float64
	clock        func() time.Time
}

// defaultOptions returns the default document options.
func defaultOptions() options {
	return options{
		clock: time.Now,
	}
}

// WithRegistry shares a style registry between documents.
func WithRegistry(r *style.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithEngine sets the shaping engine. By default every document creates
// its own text.NewEngine().
func WithEngine(e *text.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithDefaultStyle sets the style of untagged text.
func WithDefaultStyle(s style.Style) Option {
	return func(o *options) {
		o.defaultStyle = s
	}
}

// WithSingleLine restricts the document to one line. Inserted text is cut
// at its first newline.
func WithSingleLine(single bool) Option {
	return func(o *options) {
		o.singleLine = single
	}
}

// WithWordWrap enables wrapping at the available width.
func WithWordWrap(wrap bool) Option {
	return func(o *options) {
		o.wordWrap = wrap
	}
}

// WithReadOnly rejects user edits (cut, paste, delete, typing).
// Programmatic SetText still works.
func WithReadOnly(readOnly bool) Option {
	return func(o *options) {
		o.readOnly = readOnly
	}
}

// WithPassword displays every character as mask. A zero mask selects
// DefaultPasswordMask.
func WithPassword(mask rune) Option {
	return func(o *options) {
		if mask == 0 {
			mask = DefaultPasswordMask
		}
		o.password = mask
	}
}

// WithAlignment sets the horizontal alignment of lines.
func WithAlignment(a Alignment) Option {
	return func(o *options) {
		o.alignment = a
	}
}

// WithAvailableWidth sets the width lines wrap at.
func WithAvailableWidth(w float64) Option {
	return func(o *options) {
		o.width = w
	}
}

// WithClock sets the time source of the caret blink.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
