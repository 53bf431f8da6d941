// Package text shapes strings into positioned glyphs.
//
// The shaping pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF once)
//   - Face: lightweight font instance at a specific size, implementing Font
//   - Engine: splits text into runs, resolves bidi embeddings, applies
//     kerning and fallback fonts
//   - Shaper: turns one run into glyphs (GoTextShaper uses HarfBuzz,
//     BuiltinShaper maps one character to one glyph)
//
// # Example usage
//
//	// Load font (do once, share across application)
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create face at specific size (lightweight)
//	face := source.Face(24)
//
//	engine := text.NewEngine()
//	glyphs := engine.Shape("Hello, שלום!", func(int) text.Font { return face })
//
// Glyphs come back in logical order with source ranges covering the input
// exactly once. Right-to-left runs are shaped in visual order and reordered;
// a renderer mirrors them again when it places them on a line.
package text
