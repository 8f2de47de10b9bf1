package reporter_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/reporter"
)

type renderCase struct {
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	Line    int    `yaml:"line"`
	Col     int    `yaml:"col"`
	Tag     string `yaml:"tag"`
	Message string `yaml:"message"`
	Source  string `yaml:"source"`

	// The caret's indent in rendered cells.
	Caret int `yaml:"caret"`
}

// TestRenderCorpus drives the renderer over the cases in testdata, checking
// the header and that the caret lands on the right cell for each source
// line. The interesting cases are the emoji-dense ones, where cells, runes
// and bytes all disagree.
func TestRenderCorpus(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/render.yaml")
	require.NoError(t, err)

	var cases []renderCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			pos := ast.SourcePos{Filename: tc.File, Line: tc.Line, Col: tc.Col}
			fault := reporter.Errorf(reporter.Tag(tc.Tag), pos, "%s", tc.Message)

			got := reporter.Render(fault, tc.Source)
			lines := strings.Split(got, "\n")
			require.Len(t, lines, 3)

			assert.Equal(t, fmt.Sprintf("%s: %s: %s", pos, tc.Tag, tc.Message), lines[0])
			assert.Equal(t, fmt.Sprintf("  %d | %s", tc.Line, tc.Source), lines[1])

			gutter := fmt.Sprintf("  %s | ", strings.Repeat(" ", len(fmt.Sprint(tc.Line))))
			assert.Equal(t, gutter+strings.Repeat(" ", tc.Caret)+"^", lines[2])
		})
	}
}
