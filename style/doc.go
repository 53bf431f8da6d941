// Package style provides text styles and the registry that interns them.
//
// A [Style] groups an optional font with text, background and outline
// [Paint]s. Each paint is either a solid [RGBA] color or a [Gradient].
// Documents never store styles directly. They tag text with an [ID]
// handed out by a [Registry], which deduplicates equal styles and
// reference counts them:
//
//	reg := style.NewRegistry()
//	bold := reg.Intern(style.Style{Font: boldFace, Text: style.Solid(style.Black)})
//	defer reg.Release(bold)
package style
