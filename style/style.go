package style

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gogpu/textedit/text"
)

// Style is the visual attributes attached to a run of text.
// Any field may be left unset, in which case the document default applies.
type Style struct {
	Font       text.Font
	Text       Paint
	Background Paint
	Outline    Paint
}

// Equal reports whether two styles are structurally identical.
// Fonts compare by identity.
func (s Style) Equal(o Style) bool {
	return text.SameFont(s.Font, o.Font) &&
		s.Text.Equal(o.Text) &&
		s.Background.Equal(o.Background) &&
		s.Outline.Equal(o.Outline)
}

// Merge returns s with every unset field taken from def.
func (s Style) Merge(def Style) Style {
	if s.Font == nil {
		s.Font = def.Font
	}
	s.Text = s.Text.Or(def.Text)
	s.Background = s.Background.Or(def.Background)
	s.Outline = s.Outline.Or(def.Outline)
	return s
}

// hash computes an FNV-1a hash consistent with Equal.
func (s Style) hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}
	if s.Font != nil {
		put(s.Font.ID())
		put(uint64(s.Font.PasswordMask()))
	} else {
		put(0)
		put(0)
	}
	for _, p := range [...]Paint{s.Text, s.Background, s.Outline} {
		put(uint64(p.kind))
		switch p.kind {
		case PaintSolid:
			putColor(put, p.color)
		case PaintGradient:
			put(uint64(p.gradient.Direction))
			put(uint64(p.gradient.Extend))
			for _, st := range p.gradient.Stops {
				put(floatBits(st.Offset))
				putColor(put, st.Color)
			}
		}
	}
	return h.Sum64()
}

func putColor(put func(uint64), c RGBA) {
	put(floatBits(c.R))
	put(floatBits(c.G))
	put(floatBits(c.B))
	put(floatBits(c.A))
}

// floatBits returns the bits of v with negative zero folded into zero,
// since Equal treats them as the same value.
func floatBits(v float64) uint64 {
	if v == 0 {
		v = 0
	}
	return math.Float64bits(v)
}
