package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripUnboundPrefixes(t *testing.T) {
	t.Run("strips prefixes from opening and closing tags", func(t *testing.T) {
		out, fixed := StripUnboundPrefixes("<ns:srai>HELLO</ns:srai>")
		assert.True(t, fixed)
		assert.Equal(t, "<srai>HELLO</srai>", out)
	})

	t.Run("strips prefixes from attribute names", func(t *testing.T) {
		out, fixed := StripUnboundPrefixes(`<category ns:name="x">`)
		assert.True(t, fixed)
		assert.Equal(t, `<category name="x">`, out)
	})

	t.Run("strips stacked prefixes in one application", func(t *testing.T) {
		out, fixed := StripUnboundPrefixes("<a:b:category>x</a:b:category>")
		assert.True(t, fixed)
		assert.Equal(t, "<category>x</category>", out)

		out, again := StripUnboundPrefixes(out)
		assert.False(t, again)
		assert.Equal(t, "<category>x</category>", out)
	})

	t.Run("leaves colons in text content alone", func(t *testing.T) {
		in := "<template>see http://example.com at 10:30</template>"
		out, fixed := StripUnboundPrefixes(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}

func TestTruncateAfterRoot(t *testing.T) {
	pass := TruncateAfterRoot("aiml")

	t.Run("discards junk after the last closing tag", func(t *testing.T) {
		out, fixed := pass("<aiml><category/></aiml>garbage here")
		assert.True(t, fixed)
		assert.Equal(t, "<aiml><category/></aiml>", out)
	})

	t.Run("keeps one trailing newline", func(t *testing.T) {
		out, fixed := pass("<aiml/></aiml>\nmore\n")
		assert.True(t, fixed)
		assert.Equal(t, "<aiml/></aiml>\n", out)
	})

	t.Run("noop without closing tag", func(t *testing.T) {
		in := "<aiml><category>"
		out, fixed := pass(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("noop when nothing follows", func(t *testing.T) {
		in := "<aiml><category/></aiml>\n"
		out, fixed := pass(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("content before the cut is byte-preserved", func(t *testing.T) {
		prefix := "<aiml>\n  <category><pattern>* </pattern></category>\n</aiml>"
		out, fixed := pass(prefix + "\x00\x00trailing")
		assert.True(t, fixed)
		assert.Equal(t, prefix, out)
	})
}

func TestNormalizeMalformedTags(t *testing.T) {
	t.Run("collapses doubled brackets", func(t *testing.T) {
		out, fixed := NormalizeMalformedTags("<<srai>>HI<</srai>>")
		assert.True(t, fixed)
		assert.Equal(t, "<srai>HI</srai>", out)
	})

	t.Run("self-closes an unterminated opening tag at end of line", func(t *testing.T) {
		out, fixed := NormalizeMalformedTags("x <srai\ny")
		assert.True(t, fixed)
		assert.Equal(t, "x <srai/>\ny", out)
	})

	t.Run("self-closes an unterminated tag before the next tag", func(t *testing.T) {
		out, fixed := NormalizeMalformedTags("<template><srai<br/></template>")
		assert.True(t, fixed)
		assert.Equal(t, "<template><srai/><br/></template>", out)
	})

	t.Run("reterminates an unterminated closing tag", func(t *testing.T) {
		out, fixed := NormalizeMalformedTags("<aiml><category/></aiml")
		assert.True(t, fixed)
		assert.Equal(t, "<aiml><category/></aiml>", out)
	})

	t.Run("leaves a bare bracket in text for the entity escaper", func(t *testing.T) {
		in := "3 < 4"
		out, fixed := NormalizeMalformedTags(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("noop on well-formed markup", func(t *testing.T) {
		in := "<template><srai>HI</srai></template>"
		out, fixed := NormalizeMalformedTags(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("leaves multi-line CDATA payload untouched", func(t *testing.T) {
		in := "<template><![CDATA[\n<foo\n]]></template>"
		out, fixed := NormalizeMalformedTags(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("leaves multi-line comments untouched", func(t *testing.T) {
		in := "<!--\n<note\n--><template>x</template>"
		out, fixed := NormalizeMalformedTags(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}

func TestEscapeEntities(t *testing.T) {
	t.Run("escapes a bare ampersand", func(t *testing.T) {
		out, fixed := EscapeEntities("<template>fish & chips</template>")
		assert.True(t, fixed)
		assert.Equal(t, "<template>fish &amp; chips</template>", out)
	})

	t.Run("noop on already-escaped content", func(t *testing.T) {
		in := "<template>fish &amp; chips &lt;tag&gt; &#10; &#x1F; &quot;hi&quot;</template>"
		out, fixed := EscapeEntities(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("never double-escapes named references", func(t *testing.T) {
		out, _ := EscapeEntities("&amp; &nbsp;")
		assert.Equal(t, "&amp; &nbsp;", out)
	})

	t.Run("escapes an ampersand whose reference never closes", func(t *testing.T) {
		out, fixed := EscapeEntities("<template>&amp</template>")
		assert.True(t, fixed)
		assert.Equal(t, "<template>&amp;amp</template>", out)
	})

	t.Run("escapes brackets and quotes in text only", func(t *testing.T) {
		out, fixed := EscapeEntities(`<p a="1&2">x<y "quoted" don't</p>`)
		assert.True(t, fixed)
		assert.Equal(t, `<p a="1&amp;2">x&lt;y &quot;quoted&quot; don&apos;t</p>`, out)
	})

	t.Run("copies comments verbatim", func(t *testing.T) {
		in := "<!-- a & b < c -->"
		out, fixed := EscapeEntities(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}

func TestCloseVoidElements(t *testing.T) {
	t.Run("closes bare void tags", func(t *testing.T) {
		out, fixed := CloseVoidElements("line one<br>line two<hr>")
		assert.True(t, fixed)
		assert.Equal(t, "line one<br/>line two<hr/>", out)
	})

	t.Run("closes void tags with attributes", func(t *testing.T) {
		out, fixed := CloseVoidElements(`<img src="x.png">`)
		assert.True(t, fixed)
		assert.Equal(t, `<img src="x.png"/>`, out)
	})

	t.Run("noop on already self-closed tags", func(t *testing.T) {
		in := `<br/><hr/><img src="x.png"/><input type="text"/><meta name="a"/><link rel="b"/>`
		out, fixed := CloseVoidElements(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("does not touch tags that merely start with a void name", func(t *testing.T) {
		in := "<brand>text</brand>"
		out, fixed := CloseVoidElements(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}

func TestDedupAttributes(t *testing.T) {
	t.Run("first occurrence wins and order is preserved", func(t *testing.T) {
		out, fixed := DedupAttributes(`<x a="1" b="2" a="3">`)
		assert.True(t, fixed)
		assert.Equal(t, `<x a="1" b="2">`, out)
	})

	t.Run("drops every later duplicate", func(t *testing.T) {
		out, fixed := DedupAttributes(`<x a="1" a="2" a="3" b="4">`)
		assert.True(t, fixed)
		assert.Equal(t, `<x a="1" b="4">`, out)
	})

	t.Run("noop without duplicates", func(t *testing.T) {
		in := `<category name="x" topic="y">`
		out, fixed := DedupAttributes(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("attribute-shaped text outside tags is untouched", func(t *testing.T) {
		in := `say a="1" a="2" out loud`
		out, fixed := DedupAttributes(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}

func TestSanitizeBytes(t *testing.T) {
	t.Run("strips control characters", func(t *testing.T) {
		out, fixed := SanitizeBytes("a\x00b\x01c\x1fd\x7fe")
		assert.True(t, fixed)
		assert.Equal(t, "abcde", out)
	})

	t.Run("keeps tab newline and carriage return", func(t *testing.T) {
		in := "a\tb\nc\r\nd"
		out, fixed := SanitizeBytes(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})

	t.Run("drops invalid encoding bytes", func(t *testing.T) {
		out, fixed := SanitizeBytes("a\xffb\xfe\xfdc")
		assert.True(t, fixed)
		assert.Equal(t, "abc", out)
	})
}

func TestWrapBareWords(t *testing.T) {
	t.Run("wraps a word that lost its opening bracket", func(t *testing.T) {
		out, fixed := WrapBareWords("say srai>HELLO")
		assert.True(t, fixed)
		assert.Equal(t, "say <srai>HELLO", out)
	})

	t.Run("noop on intact markup", func(t *testing.T) {
		in := `<srai>HI</srai><br/><x a="1">`
		out, fixed := WrapBareWords(in)
		assert.False(t, fixed)
		assert.Equal(t, in, out)
	})
}
