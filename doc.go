// Package textedit lays out and edits styled, bidirectional text.
//
// # Overview
//
// A [Document] holds UTF-8 text tagged with styles from a [style.Registry].
// It shapes every paragraph into glyphs with a [text.Engine], breaks the
// glyphs into lines and keeps a [Cursor] addressed in glyph indices. Each
// edit reshapes only the paragraphs it touches.
//
// # Quick Start
//
//	src, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := textedit.New(src.Face(16), textedit.WithWordWrap(true), textedit.WithAvailableWidth(300))
//	doc.SetText("Hello, world")
//
//	for line := range doc.RenderLines() {
//	    for _, g := range line.Glyphs {
//	        draw(g.Glyph.GID, g.Pos, g.Color)
//	    }
//	}
//
// # Coordinates
//
// Three coordinate spaces are kept in sync: byte offsets into the text,
// glyph indices and visual positions. [Document.ToGlyph] and
// [Document.FromGlyph] convert between the first two, [Document.HitTest]
// and [Document.CaretRect] between the last two.
//
// # Logging
//
// textedit is silent by default. Call [SetLogger] to receive diagnostics.
package textedit
