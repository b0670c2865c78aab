package repair

import "strings"

// TruncateAfterRoot returns the pass that discards everything after the last
// occurrence of the root element's closing tag. Corrupted exports often
// carry junk appended past an otherwise complete document; cutting at the
// final closing tag is the cheapest safe recovery. A line terminator that
// immediately follows the closing tag is kept. If the closing tag never
// appears the pass is a no-op and claims no fix.
func TruncateAfterRoot(rootTag string) func(string) (string, bool) {
	closing := "</" + rootTag + ">"
	return func(content string) (string, bool) {
		idx := strings.LastIndex(content, closing)
		if idx < 0 {
			return content, false
		}
		end := idx + len(closing)
		rest := content[end:]
		keep := ""
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			keep = "\r\n"
		case strings.HasPrefix(rest, "\n"):
			keep = "\n"
		}
		out := content[:end] + keep
		return out, out != content
	}
}
