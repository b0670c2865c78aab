package repair

import (
	"regexp"
	"strings"
)

// Hand-authored corpora routinely leave the always-empty elements open,
// HTML-style. The dialect defines no content model for them, so the open
// form is rewritten self-closed.
var voidTagRe = regexp.MustCompile(`<(br|hr|img|input|meta|link)(\s[^<>]*)?>`)

// CloseVoidElements rewrites the opening form of the void-element allow-list
// (line break, horizontal rule, image, input, metadata, link) into
// self-closing form. Already self-closed occurrences are untouched.
func CloseVoidElements(content string) (string, bool) {
	out := voidTagRe.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasSuffix(tag, "/>") {
			return tag
		}
		return tag[:len(tag)-1] + "/>"
	})
	return out, out != content
}
