package reporter

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Render formats a fault together with the source line it points at,
// underlining the offending column:
//
//	🐟.emojic:1:5: semantic: value of type 🔢 cannot be called
//	  1 | 📗 🐟 🔡 ❗
//	    |       ^
//
// Source positions count columns in grapheme clusters, and Emojicode source
// is emoji-dense, so the caret indent is computed from the rendered width of
// the clusters before the column rather than from bytes or runes.
func Render(err ErrorWithPos, sourceLine string) string {
	pos := err.Position()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %v\n", pos, err.Tag(), err.Unwrap())

	lineNo := fmt.Sprintf("%d", pos.Line)
	fmt.Fprintf(&b, "  %s | %s\n", lineNo, sourceLine)
	fmt.Fprintf(&b, "  %s | %s^", strings.Repeat(" ", len(lineNo)), strings.Repeat(" ", caretIndent(sourceLine, pos.Col)))
	return b.String()
}

// caretIndent returns the rendered width of the first col-1 grapheme
// clusters of line.
func caretIndent(line string, col int) int {
	width := 0
	g := uniseg.NewGraphemes(line)
	for i := 1; i < col && g.Next(); i++ {
		width += g.Width()
	}
	return width
}
