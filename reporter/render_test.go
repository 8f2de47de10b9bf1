package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/reporter"
)

func TestRender(t *testing.T) {
	t.Parallel()

	err := reporter.Errorf(reporter.TagUnhandledError,
		ast.SourcePos{Filename: "🐟.emojic", Line: 2, Col: 5}, "nothing handles the error")

	got := reporter.Render(err, "a + call b")
	want := "🐟.emojic:2:5: unhandled-error: nothing handles the error\n" +
		"  2 | a + call b\n" +
		"    |     ^"
	assert.Equal(t, want, got)
}

func TestRenderEmojiWidths(t *testing.T) {
	t.Parallel()

	// Columns count grapheme clusters; the caret indent counts rendered
	// cells, so the two emoji before column 5 indent by two cells each.
	err := reporter.Errorf(reporter.TagSemantic,
		ast.SourcePos{Filename: "🐟.emojic", Line: 1, Col: 5}, "value of type 🔢 cannot be called")

	got := reporter.Render(err, "📗 🐟 🔡 ❗")
	want := "🐟.emojic:1:5: semantic: value of type 🔢 cannot be called\n" +
		"  1 | 📗 🐟 🔡 ❗\n" +
		"    |       ^"
	assert.Equal(t, want, got)
}
