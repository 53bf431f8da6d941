package textedit

import (
	"fmt"
	"strings"

	"github.com/gogpu/textedit/clipboard"
	"github.com/gogpu/textedit/style"
)

// SetText replaces the whole text with untagged s and moves the caret to
// the end.
func (d *Document) SetText(s string) error {
	if d.rebuilding {
		return d.refuse("set text")
	}
	s = d.sanitize(s)
	old := d.buf.Len()
	d.rebuilding = true
	d.buf.Reset(s, style.None)
	d.rebuilding = false
	d.rebuild(0, old, len(s))
	n := len(d.glyphs)
	d.cursor.set(n, n)
	d.onText.emit(struct{}{})
	return nil
}

// InsertText inserts s at the caret, as typed by the user, and moves the
// caret past it. The text takes the style of the insertion point. It does
// nothing in a read-only document.
func (d *Document) InsertText(s string) error {
	if d.readOnly {
		return nil
	}
	at, _ := d.FromGlyph(d.cursor.position)
	return d.replace(at, at, d.sanitize(s), style.None)
}

// InsertTextStyled inserts s with style st at the caret.
func (d *Document) InsertTextStyled(s string, st style.Style) error {
	if d.readOnly {
		return nil
	}
	id := d.registry.Intern(st)
	defer d.registry.Release(id)
	at, _ := d.FromGlyph(d.cursor.position)
	return d.replace(at, at, d.sanitize(s), id)
}

// InsertTextAt inserts s at text offset.
func (d *Document) InsertTextAt(offset int, s string) error {
	if n := d.buf.Len(); offset < 0 || offset > n {
		return &OutOfRangeError{Op: "insert", Index: offset, Limit: n}
	}
	return d.replace(offset, offset, d.sanitize(s), style.None)
}

// InsertNewline inserts a line break at the caret. It does nothing in a
// single-line document.
func (d *Document) InsertNewline() error {
	if d.singleLine {
		return nil
	}
	return d.InsertText("\n")
}

// DeleteText deletes the text of glyphs [start, end).
func (d *Document) DeleteText(start, end int) error {
	ts, te, err := d.glyphRange("delete", start, end)
	if err != nil || ts == te {
		return err
	}
	return d.replace(ts, te, "", style.None)
}

// ApplyStyle tags the text of glyphs [start, end) with st.
func (d *Document) ApplyStyle(start, end int, st style.Style) error {
	ts, te, err := d.glyphRange("apply style", start, end)
	if err != nil || ts == te {
		return err
	}
	if d.rebuilding {
		return d.refuse("apply style")
	}
	id := d.registry.Intern(st)
	defer d.registry.Release(id)
	return d.edit(ts, te, te-ts, false, func() error {
		return d.buf.SetTag(ts, te, id)
	})
}

// DeleteSelected deletes the selection, or the glyph after the caret when
// nothing is selected.
func (d *Document) DeleteSelected() error {
	if !d.CanDeleteSelected() {
		return nil
	}
	if d.cursor.HasSelection() {
		return d.DeleteText(d.cursor.Selection())
	}
	pos := d.cursor.position
	if pos >= len(d.glyphs) {
		return nil
	}
	return d.DeleteText(pos, pos+1)
}

// DeleteForward handles the Delete key. It is DeleteSelected.
func (d *Document) DeleteForward() error {
	return d.DeleteSelected()
}

// DeleteBackward handles the Backspace key: it deletes the selection, or
// the glyph before the caret.
func (d *Document) DeleteBackward() error {
	if !d.CanDeleteSelected() {
		return nil
	}
	if d.cursor.HasSelection() {
		return d.DeleteText(d.cursor.Selection())
	}
	pos := d.cursor.position
	if pos == 0 {
		return nil
	}
	return d.DeleteText(pos-1, pos)
}

// SelectAll selects the whole document.
func (d *Document) SelectAll() {
	d.cursor.set(len(d.glyphs), 0)
}

// SelectedText returns the text of the selection.
func (d *Document) SelectedText() string {
	start, end := d.cursor.Selection()
	ts, _ := d.FromGlyph(start)
	te, _ := d.FromGlyph(end)
	return d.buf.Slice(ts, te)
}

// CanCopy reports whether Copy would copy anything. Password documents
// never expose their text.
func (d *Document) CanCopy() bool {
	return d.cursor.HasSelection() && d.password == 0
}

// CanCut reports whether Cut would do anything.
func (d *Document) CanCut() bool {
	return d.CanCopy() && !d.readOnly
}

// CanPaste reports whether Paste is allowed.
func (d *Document) CanPaste() bool {
	return !d.readOnly
}

// CanDeleteSelected reports whether DeleteSelected is allowed.
func (d *Document) CanDeleteSelected() bool {
	return !d.readOnly && d.buf.Len() > 0
}

// Copy puts the selected text on cb.
func (d *Document) Copy(cb clipboard.Clipboard) error {
	if cb == nil {
		return ErrNoClipboard
	}
	if !d.CanCopy() {
		return nil
	}
	if err := cb.SetText(d.SelectedText()); err != nil {
		Logger().Warn("textedit: copy failed", "err", err)
		return fmt.Errorf("textedit: copy: %w", err)
	}
	return nil
}

// Cut copies the selection to cb and deletes it.
func (d *Document) Cut(cb clipboard.Clipboard) error {
	if cb == nil {
		return ErrNoClipboard
	}
	if !d.CanCut() {
		return nil
	}
	if err := d.Copy(cb); err != nil {
		return err
	}
	return d.DeleteSelected()
}

// Paste replaces the selection with the text on cb.
func (d *Document) Paste(cb clipboard.Clipboard) error {
	if cb == nil {
		return ErrNoClipboard
	}
	if !d.CanPaste() {
		return nil
	}
	s, err := cb.Text()
	if err != nil {
		Logger().Warn("textedit: paste failed", "err", err)
		return fmt.Errorf("textedit: paste: %w", err)
	}
	if d.cursor.HasSelection() {
		if err := d.DeleteText(d.cursor.Selection()); err != nil {
			return err
		}
	}
	return d.InsertText(s)
}

// sanitize drops carriage returns and, in a single-line document,
// everything from the first newline on.
func (d *Document) sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	if d.singleLine {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

// glyphRange converts glyphs [start, end) to a text range.
func (d *Document) glyphRange(op string, start, end int) (int, int, error) {
	n := len(d.glyphs)
	if start < 0 || start > n {
		return 0, 0, &OutOfRangeError{Op: op, Index: start, Limit: n}
	}
	if end < start || end > n {
		return 0, 0, &OutOfRangeError{Op: op, Index: end, Limit: n}
	}
	if start == end {
		return 0, 0, nil
	}
	ts, _ := d.FromGlyph(start)
	_, te := d.FromGlyph(end - 1)
	return ts, te, nil
}

// replace replaces the text [start, end) with s tagged tag.
func (d *Document) replace(start, end int, s string, tag style.ID) error {
	if d.rebuilding {
		return d.refuse("edit")
	}
	if start == end && s == "" {
		return nil
	}
	return d.edit(start, end, len(s), true, func() error {
		if end > start {
			if err := d.buf.Delete(start, end); err != nil {
				return err
			}
		}
		if s != "" {
			return d.buf.Insert(start, s, tag)
		}
		return nil
	})
}

// edit runs mutate, which replaces the text [start, end) with newLen
// bytes, then reshapes and carries the cursor across the change.
func (d *Document) edit(start, end, newLen int, textChanged bool, mutate func() error) error {
	pos, _ := d.FromGlyph(d.cursor.position)
	anchor, _ := d.FromGlyph(d.cursor.anchor)

	// Style release hooks fire inside mutate and must not edit.
	d.rebuilding = true
	err := mutate()
	d.rebuilding = false
	if err != nil {
		return fmt.Errorf("textedit: %w", err)
	}
	d.rebuild(start, end, newLen)

	remap := func(o int) int {
		switch {
		case o >= end:
			return o - (end - start) + newLen
		case o > start:
			return start + min(o-start, newLen)
		default:
			return o
		}
	}
	n := len(d.glyphs)
	d.cursor.set(
		clampInt(d.ToGlyph(remap(pos)), 0, n),
		clampInt(d.ToGlyph(remap(anchor)), 0, n),
	)
	if textChanged {
		d.onText.emit(struct{}{})
	}
	return nil
}

func (d *Document) refuse(op string) error {
	Logger().Warn("textedit: refused edit during rebuild", "op", op)
	return ErrReentrantEdit
}
