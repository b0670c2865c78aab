package repair

import "regexp"

// The corpus dialect has no namespaces; a "ns:" prefix on a tag or attribute
// is copy-paste damage and makes a strict parser reject the whole document
// for the unbound namespace. Tag names are rewritten wherever they appear so
// that unterminated tags (repaired by a later pass) are covered too;
// attribute names are rewritten only inside complete tag spans so colons in
// text content (URLs, timestamps) survive.
var (
	prefixedTagRe  = regexp.MustCompile(`<(/?)[A-Za-z][\w.-]*:([A-Za-z][\w.-]*)`)
	prefixedAttrRe = regexp.MustCompile(`(\s)[A-Za-z][\w.-]*:([A-Za-z][\w.-]*)(\s*=)`)
)

// StripUnboundPrefixes rewrites prefix:name to the bare local name in
// opening tags, closing tags and attribute names. Stacked prefixes
// (<a:b:category>) shed one layer per rewrite, so the replacement runs to a
// fixpoint.
func StripUnboundPrefixes(content string) (string, bool) {
	out := content
	for {
		next := prefixedTagRe.ReplaceAllString(out, `<$1$2`)
		next = tagSpanRe.ReplaceAllStringFunc(next, func(tag string) string {
			return prefixedAttrRe.ReplaceAllString(tag, `$1$2$3`)
		})
		if next == out {
			break
		}
		out = next
	}
	return out, out != content
}
