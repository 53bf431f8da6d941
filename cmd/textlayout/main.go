// Command textlayout shapes and lays out a piece of text and prints the
// resulting lines.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textedit"
	"github.com/gogpu/textedit/clipboard"
	"github.com/gogpu/textedit/text"
)

func main() {
	var (
		input    = flag.String("text", "Hello, world!", "text to lay out")
		file     = flag.String("file", "", "read the text from a file instead of -text")
		fontPath = flag.String("font", "", "TTF/OTF font file (default Go Regular)")
		size     = flag.Float64("size", 16, "font size in pixels per em")
		width    = flag.Float64("width", 0, "available width in pixels; 0 disables wrapping")
		align    = flag.String("align", "left", "alignment: left, center or right")
		password = flag.Bool("password", false, "mask the text as a password field")
		builtin  = flag.Bool("builtin", false, "use the builtin shaper instead of HarfBuzz")
		copyText = flag.Bool("copy", false, "copy the text to the system clipboard")
		verbose  = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Parse()

	if *verbose {
		textedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src := *input
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read text: %v", err)
		}
		src = string(data)
	}

	face, err := loadFace(*fontPath, *size)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	alignment, err := parseAlignment(*align)
	if err != nil {
		log.Fatal(err)
	}

	opts := []textedit.Option{
		textedit.WithWordWrap(*width > 0),
		textedit.WithAvailableWidth(*width),
		textedit.WithAlignment(alignment),
	}
	if *password {
		opts = append(opts, textedit.WithPassword(0))
	}
	if *builtin {
		opts = append(opts, textedit.WithEngine(text.NewEngine(text.WithShaper(text.BuiltinShaper{}))))
	}

	doc := textedit.New(face, opts...)
	if err := doc.SetText(src); err != nil {
		log.Fatalf("Failed to set text: %v", err)
	}

	printLines(doc)

	if *copyText {
		doc.SelectAll()
		if err := doc.Copy(clipboard.System{}); err != nil {
			log.Fatalf("Failed to copy: %v", err)
		}
	}
}

func loadFace(path string, size float64) (*text.Face, error) {
	var (
		src *text.FontSource
		err error
	)
	if path == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(path)
	}
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

func parseAlignment(s string) (textedit.Alignment, error) {
	switch strings.ToLower(s) {
	case "left":
		return textedit.AlignLeft, nil
	case "center":
		return textedit.AlignCenter, nil
	case "right":
		return textedit.AlignRight, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

func printLines(doc *textedit.Document) {
	all := doc.Text()
	ext := doc.TextExtents()
	fmt.Printf("%d glyphs, %d lines, extents %.1fx%.1f\n", doc.GlyphCount(), len(doc.Lines()), ext.W, ext.H)
	for i, l := range doc.Lines() {
		start, _ := doc.FromGlyph(l.GlyphStart)
		end, _ := doc.FromGlyph(l.GlyphEnd)
		line := all[start:end]
		if mask := doc.Password(); mask != 0 {
			line = strings.Repeat(string(mask), utf8.RuneCountInString(line))
		}
		fmt.Printf("%3d  x=%6.1f y=%6.1f w=%6.1f %-3v %q\n", i, l.X, l.Y, l.Width, l.Direction, line)
	}
}
