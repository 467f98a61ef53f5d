package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName prepares a name for use as a filesystem entry. The text is
// NFC-normalized so names arriving in decomposed form (common for files saved
// on macOS) match their composed equivalents, then filesystem-unsafe
// characters are replaced. Slashes, backslashes, colons, and asterisks become
// dashes; other unsafe characters are removed. The result is trimmed of
// leading and trailing whitespace.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
