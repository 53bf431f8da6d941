package text

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
)

// fontKey is the part of a Font that affects shaping.
type fontKey struct {
	id   uint64
	mask rune
}

// cachedParagraph is a shaping result together with the inputs that
// produced it, so that hash collisions are detected.
type cachedParagraph struct {
	src    string
	fonts  []fontKey
	glyphs []Glyph
}

func (c cachedParagraph) matches(p *paragraph) bool {
	return c.src == p.src && slices.Equal(c.fonts, p.fontKeys())
}

// fontKeys returns the primary font of every character.
func (p *paragraph) fontKeys() []fontKey {
	keys := make([]fontKey, len(p.primary))
	for i, f := range p.primary {
		keys[i] = fontKey{id: f.ID(), mask: f.PasswordMask()}
	}
	return keys
}

// cacheKey computes an FNV-1a hash of the text, the font of every
// character and the mnemonic marker.
func (p *paragraph) cacheKey(mnemonic rune) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.src)) // fnv.Write never returns an error

	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(mnemonic))
	_, _ = h.Write(buf[:4])

	var prev Font
	for i, f := range p.primary {
		if i > 0 && SameFont(f, prev) {
			continue
		}
		prev = f
		binary.LittleEndian.PutUint32(buf[:4], uint32(i))
		binary.LittleEndian.PutUint64(buf[4:], f.ID()^uint64(f.PasswordMask())<<40)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
