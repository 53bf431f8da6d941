// Package cache provides a generic LRU cache.
//
// The text engine keeps recently shaped paragraphs here so that
// re-shaping unchanged text is a map lookup:
//
//	c := cache.New[uint64, []text.Glyph](256)
//	c.Set(key, glyphs)
//	glyphs, ok := c.Get(key)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
