package repair

import (
	"regexp"
	"strings"
)

// Entity escaping has to work without lookbehind. Two tricks stand in for
// it: ampRe lets a recognized reference win the leftmost match against a
// bare '&', so already-escaped sequences are copied through untouched; and
// markupSpanRe segments the document so bracket and quote escaping only ever
// touches text between markup, where those characters cannot be structural.
var (
	ampRe = regexp.MustCompile(`&#x[0-9a-fA-F]+;|&#[0-9]+;|&[a-zA-Z][a-zA-Z0-9]*;|&`)

	markupSpanRe = regexp.MustCompile(`(?s)<!--.*?-->|<!\[CDATA\[.*?\]\]>|<![^<>]*>|<\?[^<>]*\?>|</?[A-Za-z][^<>]*>`)
)

var textEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeEntities escapes reserved characters that are not already part of a
// recognized entity reference. Bare ampersands are escaped in text and in
// ordinary tags (attribute values collect them constantly); comments,
// CDATA and processing instructions are copied verbatim. Angle brackets and
// quotes are escaped only in text segments.
func EscapeEntities(content string) (string, bool) {
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, span := range markupSpanRe.FindAllStringIndex(content, -1) {
		b.WriteString(escapeText(content[last:span[0]]))
		b.WriteString(escapeMarkup(content[span[0]:span[1]]))
		last = span[1]
	}
	b.WriteString(escapeText(content[last:]))
	out := b.String()
	return out, out != content
}

func escapeAmps(s string) string {
	return ampRe.ReplaceAllStringFunc(s, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})
}

func escapeText(s string) string {
	return textEscaper.Replace(escapeAmps(s))
}

func escapeMarkup(s string) string {
	if strings.HasPrefix(s, "<!") || strings.HasPrefix(s, "<?") {
		return s
	}
	return escapeAmps(s)
}
