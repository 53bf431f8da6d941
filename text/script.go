package text

import "github.com/go-text/typesetting/language"

// scriptOf returns the Unicode script of r. Inherited and unknown code
// points are reported as Common so that combining marks and unassigned
// characters never split a run.
func scriptOf(r rune) language.Script {
	s := language.LookupScript(r)
	switch s {
	case language.Inherited, language.Unknown:
		return language.Common
	}
	return s
}

// scriptsCompatible reports whether characters of scripts a and b may be
// shaped in one run.
func scriptsCompatible(a, b language.Script) bool {
	return a == b || a == language.Common || b == language.Common
}
