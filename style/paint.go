package style

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// PaintKind identifies the variant held by a Paint.
type PaintKind uint8

const (
	// PaintUnset means the paint was not specified; the document default applies.
	PaintUnset PaintKind = iota
	// PaintSolid is a single color.
	PaintSolid
	// PaintGradient is a multi-stop gradient.
	PaintGradient
)

// String returns the string representation of the kind.
func (k PaintKind) String() string {
	switch k {
	case PaintUnset:
		return "Unset"
	case PaintSolid:
		return "Solid"
	case PaintGradient:
		return "Gradient"
	default:
		return unknownStr
	}
}

// Paint is either a solid color or a gradient. The zero value is unset.
type Paint struct {
	kind     PaintKind
	color    RGBA
	gradient Gradient
}

// Solid returns a paint of a single color.
func Solid(c RGBA) Paint {
	return Paint{kind: PaintSolid, color: c}
}

// LinearGradient returns a gradient paint.
func LinearGradient(g Gradient) Paint {
	g.Stops = sortStops(g.Stops)
	return Paint{kind: PaintGradient, gradient: g}
}

// Kind returns the variant held by p.
func (p Paint) Kind() PaintKind { return p.kind }

// IsSet reports whether p holds a color or a gradient.
func (p Paint) IsSet() bool { return p.kind != PaintUnset }

// Color returns the solid color of p.
func (p Paint) Color() (RGBA, bool) {
	return p.color, p.kind == PaintSolid
}

// Gradient returns the gradient of p.
func (p Paint) Gradient() (Gradient, bool) {
	return p.gradient, p.kind == PaintGradient
}

// At resolves p to a single color. Solid paints ignore t; gradients are
// sampled at t. Unset paints are transparent.
func (p Paint) At(t float64) RGBA {
	switch p.kind {
	case PaintSolid:
		return p.color
	case PaintGradient:
		return p.gradient.At(t)
	default:
		return Transparent
	}
}

// Or returns p if it is set, otherwise def.
func (p Paint) Or(def Paint) Paint {
	if p.IsSet() {
		return p
	}
	return def
}

// Equal reports structural equality.
func (p Paint) Equal(o Paint) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case PaintSolid:
		return p.color == o.color
	case PaintGradient:
		return p.gradient.Equal(o.gradient)
	default:
		return true
	}
}
