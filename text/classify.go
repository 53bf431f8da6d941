package text

import "golang.org/x/text/unicode/bidi"

// Embedding is a directional formatting code.
type Embedding uint8

const (
	// EmbeddingNone is an ordinary character.
	EmbeddingNone Embedding = iota
	// EmbedLTR is LEFT-TO-RIGHT EMBEDDING (U+202A).
	EmbedLTR
	// EmbedRTL is RIGHT-TO-LEFT EMBEDDING (U+202B).
	EmbedRTL
	// OverrideLTR is LEFT-TO-RIGHT OVERRIDE (U+202D).
	OverrideLTR
	// OverrideRTL is RIGHT-TO-LEFT OVERRIDE (U+202E).
	OverrideRTL
	// PopEmbedding is POP DIRECTIONAL FORMATTING (U+202C).
	PopEmbedding
)

// String returns the string representation of the embedding code.
func (e Embedding) String() string {
	switch e {
	case EmbeddingNone:
		return "None"
	case EmbedLTR:
		return "LRE"
	case EmbedRTL:
		return "RLE"
	case OverrideLTR:
		return "LRO"
	case OverrideRTL:
		return "RLO"
	case PopEmbedding:
		return "PDF"
	default:
		return unknownStr
	}
}

// Classifier reports the directional properties of characters.
type Classifier interface {
	// Direction returns the directional class of r.
	Direction(r rune) Direction

	// Embedding reports whether r is a directional formatting code.
	Embedding(r rune) Embedding
}

// BidiClassifier classifies characters with the Unicode Bidirectional
// Character Types from golang.org/x/text/unicode/bidi.
//
// BidiClassifier is stateless and safe for concurrent use.
type BidiClassifier struct{}

// Direction implements Classifier.
func (BidiClassifier) Direction(r rune) Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return DirectionLTR
	case bidi.R, bidi.AL:
		return DirectionRTL
	case bidi.WS, bidi.B, bidi.S:
		return DirectionWhitespace
	default:
		return DirectionNeutral
	}
}

// Embedding implements Classifier.
func (BidiClassifier) Embedding(r rune) Embedding {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.LRE:
		return EmbedLTR
	case bidi.RLE:
		return EmbedRTL
	case bidi.LRO:
		return OverrideLTR
	case bidi.RLO:
		return OverrideRTL
	case bidi.PDF:
		return PopEmbedding
	default:
		return EmbeddingNone
	}
}
