package style

import (
	"math"
	"slices"
	"sort"
)

// ExtendMode defines how a gradient is sampled outside [0, 1].
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// GradientDirection selects the axis a gradient runs along when it paints
// a span of text.
type GradientDirection int

const (
	// GradientHorizontal runs from the left edge of the text to the right edge.
	GradientHorizontal GradientDirection = iota
	// GradientVertical runs from the top of the text to its bottom.
	GradientVertical
)

// String returns the string representation of the direction.
func (d GradientDirection) String() string {
	switch d {
	case GradientHorizontal:
		return "Horizontal"
	case GradientVertical:
		return "Vertical"
	default:
		return unknownStr
	}
}

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient is a multi-stop linear gradient.
type Gradient struct {
	Stops     []ColorStop
	Direction GradientDirection
	Extend    ExtendMode
}

// NewGradient creates a horizontal gradient with the given stops.
// The stops are copied and sorted by offset.
func NewGradient(stops ...ColorStop) Gradient {
	return Gradient{Stops: sortStops(stops)}
}

// At samples the gradient at position t.
func (g Gradient) At(t float64) RGBA {
	stops := g.Stops
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}
	if !sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset }) {
		stops = sortStops(stops)
	}

	t = applyExtendMode(t, g.Extend)

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return s1.Color.Lerp(s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// Equal reports whether two gradients have identical stops and modes.
func (g Gradient) Equal(o Gradient) bool {
	return g.Direction == o.Direction && g.Extend == o.Extend && slices.Equal(g.Stops, o.Stops)
}

// sortStops returns a sorted copy of stops.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := slices.Clone(stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}
