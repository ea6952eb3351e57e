// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "strings"

// latexEscaper rewrites every character LaTeX reserves into the sequence
// that typesets it literally. strings.Replacer substitutes in a single
// left-to-right pass, so a backslash introduced by one substitution is never
// itself rewritten by another.
var latexEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
)

// Escape makes free text safe to embed in LaTeX body markup. Every reserved
// character is substituted exactly once.
func Escape(text string) string {
	return latexEscaper.Replace(text)
}
