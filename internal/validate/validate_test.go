package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	t.Run("acceptable document", func(t *testing.T) {
		out := Check("<aiml><category><pattern>HI</pattern><template>OK</template></category></aiml>", "category")
		assert.True(t, out.WellFormed)
		assert.Equal(t, "aiml", out.RootTag)
		assert.Equal(t, 1, out.RecordCount)
		assert.True(t, out.Acceptable("aiml"))
	})

	t.Run("counts every record", func(t *testing.T) {
		out := Check("<aiml><category/><category/><topic><category/></topic></aiml>", "category")
		assert.Equal(t, 3, out.RecordCount)
	})

	t.Run("wrong root is well-formed but not acceptable", func(t *testing.T) {
		out := Check("<wrongroot><category/></wrongroot>", "category")
		assert.True(t, out.WellFormed)
		assert.Equal(t, "wrongroot", out.RootTag)
		assert.Equal(t, 1, out.RecordCount)
		assert.False(t, out.Acceptable("aiml"))
	})

	t.Run("zero records is not acceptable", func(t *testing.T) {
		out := Check("<aiml><topic name=\"x\"></topic></aiml>", "category")
		assert.True(t, out.WellFormed)
		assert.False(t, out.Acceptable("aiml"))
	})

	t.Run("unclosed tag is not well-formed", func(t *testing.T) {
		out := Check("<aiml><category></aiml>", "category")
		assert.False(t, out.WellFormed)
		assert.Empty(t, out.RootTag)
		assert.Zero(t, out.RecordCount)
		assert.NotEmpty(t, out.Diagnostic)
		assert.False(t, out.Acceptable("aiml"))
	})

	t.Run("second document element is rejected", func(t *testing.T) {
		out := Check("<aiml><category/></aiml><aiml/>", "category")
		assert.False(t, out.WellFormed)
		assert.NotEmpty(t, out.Diagnostic)
	})

	t.Run("text after the document element is rejected", func(t *testing.T) {
		out := Check("<aiml><category/></aiml>junk", "category")
		assert.False(t, out.WellFormed)
		assert.NotEmpty(t, out.Diagnostic)
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		out := Check("<aiml><category/></aiml>\n  \n", "category")
		assert.True(t, out.WellFormed)
	})

	t.Run("empty content has no root", func(t *testing.T) {
		out := Check("", "category")
		assert.False(t, out.WellFormed)
		assert.NotEmpty(t, out.Diagnostic)
	})

	t.Run("unknown entity is a parse failure", func(t *testing.T) {
		out := Check("<aiml><category>&nbsp;</category></aiml>", "category")
		assert.False(t, out.WellFormed)
	})
}
