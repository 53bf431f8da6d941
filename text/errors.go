package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFont wraps parse failures of TTF/OTF data.
	ErrInvalidFont = errors.New("text: invalid font data")
)
