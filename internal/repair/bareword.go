package repair

import "regexp"

var bareWordRe = regexp.MustCompile(`(^|[^<>\w"'/=])([A-Za-z][\w-]*)>`)

// WrapBareWords wraps word tokens that sit directly against a closing angle
// bracket but lost their opening one, e.g. `srai>` becoming `<srai>`. The
// heuristic cannot tell a damaged tag from legitimate prose such as
// "press enter>" and is therefore not part of the default pass chain; it
// runs only when speculative tag recovery is switched on.
func WrapBareWords(content string) (string, bool) {
	out := bareWordRe.ReplaceAllString(content, `$1<$2>`)
	return out, out != content
}
