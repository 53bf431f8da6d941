package text

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	fallback  Font
	underline bool
	kerning   bool
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		kerning: true,
	}
}

// WithFallback sets the font used for characters the face lacks.
func WithFallback(f Font) FaceOption {
	return func(c *faceConfig) {
		c.fallback = f
	}
}

// WithUnderline underlines every glyph shaped with the face.
func WithUnderline(underline bool) FaceOption {
	return func(c *faceConfig) {
		c.underline = underline
	}
}

// WithKerning enables or disables kern table lookups. Kerning is on by
// default. HarfBuzz shaping applies the font's own kerning regardless.
func WithKerning(enabled bool) FaceOption {
	return func(c *faceConfig) {
		c.kerning = enabled
	}
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// engineConfig holds configuration for Engine.
type engineConfig struct {
	shaper     Shaper
	classifier Classifier
	mnemonic   rune
	cacheSize  int
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		shaper:     NewGoTextShaper(),
		classifier: BidiClassifier{},
		cacheSize:  256,
	}
}

// WithShaper sets the shaper. The default is a GoTextShaper.
func WithShaper(s Shaper) EngineOption {
	return func(c *engineConfig) {
		if s != nil {
			c.shaper = s
		}
	}
}

// WithClassifier sets the directional classifier. The default is
// BidiClassifier.
func WithClassifier(cl Classifier) EngineOption {
	return func(c *engineConfig) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// WithMnemonic enables mnemonic markers. Each marker is removed from the
// shaped output and the character after it is flagged GlyphMnemonic.
// A doubled marker produces one literal marker.
func WithMnemonic(marker rune) EngineOption {
	return func(c *engineConfig) {
		c.mnemonic = marker
	}
}

// WithCache sets the number of shaped paragraphs kept for reuse.
// Zero disables the cache.
func WithCache(n int) EngineOption {
	return func(c *engineConfig) {
		c.cacheSize = n
	}
}
