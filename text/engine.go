package text

import (
	"slices"
	"sort"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textedit/internal/cache"
)

// maxFallbackDepth bounds how far down a fallback chain the engine walks
// for characters no font can display.
const maxFallbackDepth = 4

// FontSelector returns the font for the character at byte offset within
// the string being shaped. It must not return nil.
type FontSelector func(offset int) Font

// Engine turns strings into logically ordered, positioned glyphs.
//
// The engine splits text into runs of uniform font, direction and script,
// hands each run to its Shaper, reorders right-to-left output back into
// logical order, applies kerning and substitutes fallback fonts for missing
// glyphs.
//
// Engine is safe for concurrent use if its Shaper and Classifier are.
type Engine struct {
	shaper     Shaper
	classifier Classifier
	mnemonic   rune
	cache      *cache.Cache[uint64, cachedParagraph]
}

// NewEngine creates an Engine. By default it shapes with a GoTextShaper,
// classifies with BidiClassifier and caches 256 paragraphs.
func NewEngine(opts ...EngineOption) *Engine {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(&config)
	}

	e := &Engine{
		shaper:     config.shaper,
		classifier: config.classifier,
		mnemonic:   config.mnemonic,
	}
	if config.cacheSize > 0 {
		e.cache = cache.New[uint64, cachedParagraph](config.cacheSize)
	}
	return e
}

// CacheStats returns statistics of the paragraph cache.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// Shape shapes s. sel picks the font for each character.
//
// The result is in logical order. Each glyph's Start and End are byte
// offsets into s; consecutive glyphs have non-decreasing ranges and
// together cover s exactly once, mnemonic markers included. Empty input
// returns nil without invoking the shaper.
func (e *Engine) Shape(s string, sel FontSelector) []Glyph {
	if s == "" || sel == nil {
		return nil
	}

	p := e.decode(s, sel)
	if p == nil {
		return nil
	}

	var key uint64
	if e.cache != nil {
		key = p.cacheKey(e.mnemonic)
		if hit, ok := e.cache.Get(key); ok && hit.matches(p) {
			return slices.Clone(hit.glyphs)
		}
	}

	glyphs := e.shapeWithFallback(p)
	if e.cache != nil {
		e.cache.Set(key, cachedParagraph{
			src:    p.src,
			fonts:  p.fontKeys(),
			glyphs: slices.Clone(glyphs),
		})
	}
	return glyphs
}

// paragraph is a decoded string ready for shaping. Slices are indexed by
// character.
type paragraph struct {
	src      string
	runes    []rune
	starts   []int
	primary  []Font
	fonts    []Font
	mnemonic []bool
	class    []Direction
	embed    []Embedding
	dirs     []Direction
	runDir   []Direction
}

// decode strips mnemonic markers, selects fonts, applies password masks and
// resolves directions.
func (e *Engine) decode(s string, sel FontSelector) *paragraph {
	p := &paragraph{src: s}

	pending := -1
	add := func(r rune, start, offset int, mnemonic bool) bool {
		f := sel(offset)
		if f == nil {
			Logger().Warn("text: font selector returned nil", "offset", offset)
			return false
		}
		if mask := f.PasswordMask(); mask != 0 && r != '\n' {
			r = mask
		}
		p.runes = append(p.runes, r)
		p.starts = append(p.starts, start)
		p.primary = append(p.primary, f)
		p.mnemonic = append(p.mnemonic, mnemonic)
		return true
	}

	for i, r := range s {
		if e.mnemonic != 0 && r == e.mnemonic {
			if pending < 0 {
				pending = i
				continue
			}
			// A doubled marker is one literal marker.
			if !add(r, pending, i, false) {
				return nil
			}
			pending = -1
			continue
		}
		start, mnemonic := i, false
		if pending >= 0 {
			start, mnemonic = pending, true
			pending = -1
		}
		if !add(r, start, i, mnemonic) {
			return nil
		}
	}
	if pending >= 0 {
		// A trailing marker has nothing to flag and is kept as text.
		if !add(e.mnemonic, pending, pending, false) {
			return nil
		}
	}
	if len(p.runes) == 0 {
		return nil
	}

	p.fonts = slices.Clone(p.primary)
	e.resolveDirections(p)
	return p
}

// embeddingLevel is an entry of the directional embedding stack.
type embeddingLevel struct {
	dir      Direction
	override bool
}

// resolveDirections fills class, embed, dirs and runDir.
//
// Embeddings (LRE, RLE) give their direction to neutral and whitespace
// characters; overrides (LRO, RLO) force it on every character; PDF pops.
// A line break closes all open embeddings.
//
// The run direction starts LTR and follows strong characters. A neutral or
// whitespace character following RTL text switches back to LTR when the
// next strong character on its line is LTR, or when there is none and the
// line already contains LTR text.
func (e *Engine) resolveDirections(p *paragraph) {
	n := len(p.runes)
	p.class = make([]Direction, n)
	p.embed = make([]Embedding, n)
	p.dirs = make([]Direction, n)
	p.runDir = make([]Direction, n)

	var stack []embeddingLevel
	for k, r := range p.runes {
		p.class[k] = e.classifier.Direction(r)
		p.embed[k] = e.classifier.Embedding(r)

		switch p.embed[k] {
		case EmbedLTR:
			stack = append(stack, embeddingLevel{dir: DirectionLTR})
		case EmbedRTL:
			stack = append(stack, embeddingLevel{dir: DirectionRTL})
		case OverrideLTR:
			stack = append(stack, embeddingLevel{dir: DirectionLTR, override: true})
		case OverrideRTL:
			stack = append(stack, embeddingLevel{dir: DirectionRTL, override: true})
		case PopEmbedding:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}

		d := p.class[k]
		if top := len(stack) - 1; top >= 0 && (stack[top].override || !d.IsStrong()) {
			d = stack[top].dir
		}
		p.dirs[k] = d

		if isLineEnd(r) {
			stack = stack[:0]
		}
	}

	nextStrong := make([]Direction, n)
	ahead := DirectionNeutral
	for k := n - 1; k >= 0; k-- {
		switch {
		case isLineEnd(p.runes[k]):
			ahead = DirectionNeutral
		case p.dirs[k].IsStrong():
			ahead = p.dirs[k]
		}
		nextStrong[k] = ahead
	}

	cur := DirectionLTR
	lineHasLTR := false
	for k, r := range p.runes {
		d := p.dirs[k]
		switch {
		case d.IsStrong():
			cur = d
		case cur == DirectionRTL:
			switch nextStrong[k] {
			case DirectionLTR:
				cur = DirectionLTR
			case DirectionNeutral:
				if lineHasLTR {
					cur = DirectionLTR
				}
			}
		}
		p.runDir[k] = cur

		if d == DirectionLTR {
			lineHasLTR = true
		}
		if isLineEnd(r) {
			lineHasLTR = false
		}
	}
}

// runSpan is a span of characters shaped together.
type runSpan struct {
	start, end int
	dir        Direction
	script     language.Script
	font       Font
}

// splitRuns splits the paragraph where the font changes, the run direction
// flips, or the script changes between two scripts that are not Common.
func (p *paragraph) splitRuns() []runSpan {
	var runs []runSpan
	start := 0
	script := scriptOf(p.runes[0])
	for k := 1; k < len(p.runes); k++ {
		sc := scriptOf(p.runes[k])
		if !SameFont(p.fonts[k], p.fonts[start]) || p.runDir[k] != p.runDir[start] || !scriptsCompatible(sc, script) {
			runs = append(runs, runSpan{start: start, end: k, dir: p.runDir[start], script: script, font: p.fonts[start]})
			start, script = k, sc
			continue
		}
		if script == language.Common {
			script = sc
		}
	}
	return append(runs, runSpan{start: start, end: len(p.runes), dir: p.runDir[start], script: script, font: p.fonts[start]})
}

// shapeWithFallback shapes p, then reshapes the whole paragraph with
// every character's fallback font and takes from that pass only the
// clusters still missing a glyph. It repeats until nothing is missing or no
// fallback remains.
func (e *Engine) shapeWithFallback(p *paragraph) []Glyph {
	glyphs, clusters := e.shapeRuns(p)
	for depth := 0; depth < maxFallbackDepth && hasMissing(glyphs); depth++ {
		changed := 0
		for k, f := range p.fonts {
			if fb := f.Fallback(); fb != nil {
				p.fonts[k] = fb
				changed++
			}
		}
		if changed == 0 {
			break
		}
		Logger().Debug("text: reshaping with fallback fonts", "depth", depth+1, "chars", changed)
		alt, altClusters := e.shapeRuns(p)
		glyphs, clusters = spliceMissing(glyphs, clusters, alt, altClusters, len(p.runes))
	}
	place(p, glyphs, clusters)
	return glyphs
}

func hasMissing(glyphs []Glyph) bool {
	for i := range glyphs {
		if glyphs[i].IsMissing() {
			return true
		}
	}
	return false
}

// spliceMissing replaces each cluster of glyphs holding a missing glyph
// with the glyphs alt has for the same characters. A cluster is kept when
// alt does not break clusters at both of its ends. n is the character
// count.
func spliceMissing(glyphs []Glyph, clusters []int, alt []Glyph, altClusters []int, n int) ([]Glyph, []int) {
	out := make([]Glyph, 0, len(glyphs))
	outClusters := make([]int, 0, len(clusters))
	for j := 0; j < len(glyphs); {
		c := clusters[j]
		k, missing := j, false
		for ; k < len(glyphs) && clusters[k] == c; k++ {
			missing = missing || glyphs[k].IsMissing()
		}
		end := n
		if k < len(glyphs) {
			end = clusters[k]
		}
		if a, b, ok := clusterSpan(altClusters, c, end, n); missing && ok {
			out = append(out, alt[a:b]...)
			outClusters = append(outClusters, altClusters[a:b]...)
		} else {
			out = append(out, glyphs[j:k]...)
			outClusters = append(outClusters, clusters[j:k]...)
		}
		j = k
	}
	return out, outClusters
}

// clusterSpan returns the glyph range of clusters covering characters
// [start, end).
func clusterSpan(clusters []int, start, end, n int) (int, int, bool) {
	a := sort.SearchInts(clusters, start)
	if a == len(clusters) || clusters[a] != start {
		return 0, 0, false
	}
	b := sort.SearchInts(clusters, end)
	if (b == len(clusters) && end != n) || (b < len(clusters) && clusters[b] != end) {
		return 0, 0, false
	}
	return a, b, true
}

// shapeRuns shapes every run and returns the glyphs in logical order with
// the character index of each glyph's cluster. Ranges and positions are
// left to place.
func (e *Engine) shapeRuns(p *paragraph) ([]Glyph, []int) {
	runs := p.splitRuns()
	glyphs := make([]Glyph, 0, len(p.runes))
	clusters := make([]int, 0, len(p.runes))

	for _, run := range runs {
		out := e.shaper.Shape(Run{
			Text:      p.runes,
			Start:     run.start,
			End:       run.end,
			Direction: run.dir,
			Script:    run.script,
			Font:      run.font,
		})
		shaped := out.Glyphs
		if !out.Kerned {
			for i := 1; i < len(shaped); i++ {
				shaped[i-1].XAdvance += run.font.Kern(shaped[i-1].GID, shaped[i].GID)
			}
		}
		if run.dir == DirectionRTL {
			slices.Reverse(shaped)
		}

		for _, sg := range shaped {
			c := sg.Cluster
			if c < run.start || c >= run.end {
				continue
			}
			g := Glyph{
				Direction:    p.dirs[c],
				RunDirection: run.dir,
				GID:          sg.GID,
				Start:        p.starts[c],
				Rune:         p.runes[c],
				Font:         p.fonts[c],
				Advance:      sg.XAdvance,
				OffsetX:      sg.XOffset,
				OffsetY:      sg.YOffset,
			}
			if g.Font.Underline() {
				g.Flags |= GlyphUnderline
			}
			if p.mnemonic[c] {
				g.Flags |= GlyphMnemonic
			}
			if p.class[c] == DirectionWhitespace {
				g.Flags |= GlyphWhitespace
			}
			if p.embed[c] != EmbeddingNone {
				g.Flags |= GlyphIgnorable
				g.Advance = 0
			}
			if isLineEnd(g.Rune) {
				g.Advance = 0
			}
			if !SameFont(p.fonts[c], p.primary[c]) {
				g.Flags |= GlyphFallback
			}
			glyphs = append(glyphs, g)
			clusters = append(clusters, c)
		}
	}

	if len(glyphs) == 0 {
		return nil, nil
	}
	return glyphs, clusters
}

// place closes each glyph's source range and lays the glyphs out from x=0.
func place(p *paragraph, glyphs []Glyph, clusters []int) {
	if len(glyphs) == 0 {
		return
	}

	// Close each cluster at the start of the next one so that the glyph
	// ranges cover the source exactly once.
	glyphs[0].Start = 0
	end := len(p.src)
	for j := len(glyphs) - 1; j >= 0; j-- {
		if j+1 < len(glyphs) && clusters[j+1] != clusters[j] {
			end = glyphs[j+1].Start
		}
		glyphs[j].End = max(end, glyphs[j].Start)
	}

	x := 0.0
	for j := range glyphs {
		glyphs[j].X = x
		x += glyphs[j].Advance
	}
}

func isLineEnd(r rune) bool {
	return r == '\n' || r == '\r'
}
