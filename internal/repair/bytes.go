package repair

import "strings"

// SanitizeBytes drops bytes the markup grammar can never accept: control
// characters other than tab, newline and carriage return (CR stays because
// it is a legal document character and stripping it would break CRLF
// corpora), and byte sequences that are not valid UTF-8.
func SanitizeBytes(content string) (string, bool) {
	out := strings.ToValidUTF8(content, "")
	out = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, out)
	return out, out != content
}
