package textedit

import "github.com/rivo/uniseg"

// Movement is a caret movement.
type Movement int

const (
	MoveStartOfDocument Movement = iota
	MoveEndOfDocument
	MoveStartOfLine
	MoveEndOfLine
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MovePreviousCharacter
	MoveNextCharacter
	MovePreviousWord
	MoveNextWord
)

// String returns a string representation of the movement.
func (m Movement) String() string {
	switch m {
	case MoveStartOfDocument:
		return "StartOfDocument"
	case MoveEndOfDocument:
		return "EndOfDocument"
	case MoveStartOfLine:
		return "StartOfLine"
	case MoveEndOfLine:
		return "EndOfLine"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MovePreviousCharacter:
		return "PreviousCharacter"
	case MoveNextCharacter:
		return "NextCharacter"
	case MovePreviousWord:
		return "PreviousWord"
	case MoveNextWord:
		return "NextWord"
	default:
		return unknownStr
	}
}

// MoveCursor moves the caret. With moveAnchor the selection collapses at
// the new position; otherwise it extends.
func (d *Document) MoveCursor(m Movement, moveAnchor bool) {
	pos := d.target(m, d.cursor.position)
	anchor := d.cursor.anchor
	if moveAnchor {
		anchor = pos
	}
	d.cursor.set(pos, anchor)
}

// target returns the position movement m leads to from pos.
func (d *Document) target(m Movement, pos int) int {
	n := len(d.glyphs)
	switch m {
	case MoveStartOfDocument:
		return 0
	case MoveEndOfDocument:
		return n
	case MoveStartOfLine:
		return d.lines[d.lineFor(pos)].GlyphStart
	case MoveEndOfLine:
		return d.lineEnd(d.lineFor(pos))
	case MoveLeft, MovePreviousCharacter:
		return max(pos-1, 0)
	case MoveRight, MoveNextCharacter:
		return min(pos+1, n)
	case MoveUp:
		li := d.lineFor(pos)
		if li == 0 {
			return pos
		}
		return d.hitTestLine(li-1, d.caretX(li, pos))
	case MoveDown:
		li := d.lineFor(pos)
		if li+1 >= len(d.lines) {
			return n
		}
		return d.hitTestLine(li+1, d.caretX(li, pos))
	case MovePreviousWord:
		return d.previousWord(pos)
	case MoveNextWord:
		return d.nextWord(pos)
	default:
		return pos
	}
}

// previousWord skips whitespace backwards, then one run of glyphs sharing
// a direction class.
func (d *Document) previousWord(pos int) int {
	for pos > 0 && d.glyphs[pos-1].IsWhitespace() {
		pos--
	}
	if pos == 0 {
		return 0
	}
	dir := d.glyphs[pos-1].Direction
	for pos > 0 && !d.glyphs[pos-1].IsWhitespace() && d.glyphs[pos-1].Direction == dir {
		pos--
	}
	return pos
}

// nextWord skips one run of glyphs sharing a direction class, then
// whitespace.
func (d *Document) nextWord(pos int) int {
	n := len(d.glyphs)
	if pos < n && !d.glyphs[pos].IsWhitespace() {
		dir := d.glyphs[pos].Direction
		for pos < n && !d.glyphs[pos].IsWhitespace() && d.glyphs[pos].Direction == dir {
			pos++
		}
	}
	for pos < n && d.glyphs[pos].IsWhitespace() {
		pos++
	}
	return pos
}

// SelectWordAt selects the word containing glyph pos, using Unicode word
// boundaries. The anchor goes to the start of the word and the caret to
// its end.
func (d *Document) SelectWordAt(pos int) error {
	n := len(d.glyphs)
	if pos < 0 || pos > n {
		return &OutOfRangeError{Op: "select word", Index: pos, Limit: n}
	}
	if n == 0 {
		return nil
	}
	offset, _ := d.FromGlyph(min(pos, n-1))

	para := d.paras[d.paraForText(offset)]
	start, end := para.TextStart, para.TextStart
	rest, state := d.buf.Slice(para.TextStart, para.TextEnd), -1
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start, end = end, end+len(word)
		if offset < end {
			break
		}
	}
	d.cursor.set(d.ToGlyph(end), d.ToGlyph(start))
	return nil
}
