package text

import "testing"

func TestBidiClassifier_Direction(t *testing.T) {
	tests := []struct {
		r    rune
		want Direction
	}{
		{'a', DirectionLTR},
		{'Ж', DirectionLTR},
		{'漢', DirectionLTR},
		{'א', DirectionRTL},
		{'ب', DirectionRTL},
		{' ', DirectionWhitespace},
		{'\t', DirectionWhitespace},
		{'\n', DirectionWhitespace},
		{'1', DirectionNeutral},
		{'.', DirectionNeutral},
		{'(', DirectionNeutral},
	}
	var c BidiClassifier
	for _, tt := range tests {
		if got := c.Direction(tt.r); got != tt.want {
			t.Errorf("Direction(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestBidiClassifier_Embedding(t *testing.T) {
	tests := []struct {
		r    rune
		want Embedding
	}{
		{'\u202a', EmbedLTR},
		{'\u202b', EmbedRTL},
		{'\u202c', PopEmbedding},
		{'\u202d', OverrideLTR},
		{'\u202e', OverrideRTL},
		{'a', EmbeddingNone},
		{'א', EmbeddingNone},
	}
	var c BidiClassifier
	for _, tt := range tests {
		if got := c.Embedding(tt.r); got != tt.want {
			t.Errorf("Embedding(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
