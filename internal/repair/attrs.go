package repair

import (
	"regexp"
	"strings"
)

var attrRe = regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*=\s*("[^"]*"|'[^']*'|[^\s"'<>]+)`)

// DedupAttributes drops repeated attribute names within each tag. The first
// occurrence wins and keeps its position; later duplicates are removed
// regardless of value.
func DedupAttributes(content string) (string, bool) {
	out := tagSpanRe.ReplaceAllStringFunc(content, dedupTag)
	return out, out != content
}

func dedupTag(tag string) string {
	matches := attrRe.FindAllStringSubmatchIndex(tag, -1)
	if len(matches) < 2 {
		return tag
	}
	seen := make(map[string]bool, len(matches))
	var b strings.Builder
	last := 0
	changed := false
	for _, m := range matches {
		name := tag[m[2]:m[3]]
		if !seen[name] {
			seen[name] = true
			continue
		}
		// Drop the duplicate along with the whitespace run before it.
		start := m[0]
		for start > last && (tag[start-1] == ' ' || tag[start-1] == '\t') {
			start--
		}
		b.WriteString(tag[last:start])
		last = m[1]
		changed = true
	}
	if !changed {
		return tag
	}
	b.WriteString(tag[last:])
	return b.String()
}
