// Package sanitize makes untrusted strings safe to draw in the TUI. Status
// file names come from another device and may carry terminal escape
// sequences or control characters that would corrupt the layout.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// Precompiled regexps used by DisplayName.
var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
)

// DisplayName strips escape sequences and replaces remaining control
// characters with U+FFFD so the result occupies a single line.
func DisplayName(in string) string {
	out := oscRe.ReplaceAllString(in, "")
	out = csiRe.ReplaceAllString(out, "")
	if !strings.ContainsFunc(out, unicode.IsControl) {
		return out
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, out)
}
