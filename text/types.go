package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a font. Zero is the missing glyph.
type GlyphID uint16

// Direction is the directional class of a character, or the resolved
// direction of a shaping run.
type Direction uint8

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionNeutral is punctuation, digits and symbols without a strong direction.
	DirectionNeutral
	// DirectionWhitespace is spaces, tabs and paragraph separators.
	DirectionWhitespace
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionNeutral:
		return "Neutral"
	case DirectionWhitespace:
		return "Whitespace"
	default:
		return unknownStr
	}
}

// IsStrong reports whether d is LTR or RTL.
func (d Direction) IsStrong() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// Metrics holds font metrics at a specific size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64
}

// LineHeight returns the total line height (ascent + descent + line gap).
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}
