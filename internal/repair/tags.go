package repair

import "strings"

// NormalizeMalformedTags repairs tag syntax damage: accidental doubled angle
// brackets, and tags whose terminating '>' never arrives. An unterminated
// opening tag is rewritten self-closed at the point its text ends (the next
// '<', the end of the line, or EOF) so that later passes see balanced
// brackets; an unterminated closing tag just gets its '>' back.
func NormalizeMalformedTags(content string) (string, bool) {
	out := collapseDoubledBrackets(content)
	out = closeUnterminatedTags(out)
	return out, out != content
}

func collapseDoubledBrackets(s string) string {
	for strings.Contains(s, "<<") {
		s = strings.ReplaceAll(s, "<<", "<")
	}
	for strings.Contains(s, ">>") {
		s = strings.ReplaceAll(s, ">>", ">")
	}
	return s
}

func closeUnterminatedTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '<' {
			b.WriteByte(s[i])
			i++
			continue
		}
		// Comments and CDATA sections may legally span lines and contain
		// '<'; their payload is copied through untouched.
		if end := markerSpan(s[i:], "<!--", "-->"); end > 0 {
			b.WriteString(s[i : i+end])
			i += end
			continue
		}
		if end := markerSpan(s[i:], "<![CDATA[", "]]>"); end > 0 {
			b.WriteString(s[i : i+end])
			i += end
			continue
		}
		j := i + 1
		for j < len(s) && s[j] != '>' && s[j] != '<' && s[j] != '\n' {
			j++
		}
		if j < len(s) && s[j] == '>' {
			// Properly terminated, copy through.
			b.WriteString(s[i : j+1])
			i = j + 1
			continue
		}
		seg := s[i:j]
		switch {
		case strings.HasPrefix(seg, "</") && isNameStart(seg, 2):
			b.WriteString(strings.TrimRight(seg, " \t"))
			b.WriteByte('>')
		case isNameStart(seg, 1):
			b.WriteString(strings.TrimRight(seg, " \t/"))
			b.WriteString("/>")
		default:
			// A bare '<' in text content; the entity escaper owns it.
			b.WriteString(seg)
		}
		i = j
	}
	return b.String()
}

// markerSpan returns the length of the span at the start of s delimited by
// open and close markers, or 0 when s starts with something else or the
// close marker never arrives.
func markerSpan(s, opening, closing string) int {
	if !strings.HasPrefix(s, opening) {
		return 0
	}
	end := strings.Index(s[len(opening):], closing)
	if end < 0 {
		return 0
	}
	return len(opening) + end + len(closing)
}

// isNameStart reports whether seg[at] exists and is a legal first character
// of an element name.
func isNameStart(seg string, at int) bool {
	if len(seg) <= at {
		return false
	}
	c := seg[at]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
