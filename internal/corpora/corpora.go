// Package corpora provides a golden-file test runner. A corpus is a set of
// named cases built in test code whose outputs (IR dumps, rendered
// diagnostics) are checked against files on disk, with an environment
// variable to refresh the files from the current outputs.
package corpora

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a collection of golden-file test cases.
type Corpus struct {
	// The root of the golden-file directory. This path is relative to the
	// file that calls [Corpus.Run].
	Root string

	// An environment variable holding a glob of case names whose golden
	// files should be refreshed from the current outputs instead of
	// compared.
	Refresh string

	// Possible outputs of a case, found as Root/<case name>.<extension>.
	// A missing file is treated as an expected empty output.
	Outputs []Output

	// The cases to run.
	Cases []Case
}

// Case is one golden-file test case.
type Case struct {
	// The case's name, which is also the stem of its golden files.
	Name string

	// Run produces the case's outputs, one string per element of
	// [Corpus.Outputs].
	Run func(t *testing.T) []string
}

// Output describes one output of a case.
type Output struct {
	// The extension of the output's golden file, without a dot; for a case
	// "super/init" and extension "ir", the runner reads "super/init.ir"
	// under the corpus root.
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values are compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns the empty string if the strings match, otherwise an error message.
type Compare func(got, want string) string

// Run executes every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	root := filepath.Join(callerDir(0), c.Root)

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// A refreshed run must not pass silently, or refreshed goldens
		// could land without review.
		t.Logf("corpora: refreshing golden files because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, tc := range c.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			results := tc.Run(t)
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: case produced %d outputs, want %d", len(results), len(c.Outputs))
			}

			refreshThis, _ := doublestar.Match(refresh, tc.Name)
			for i, output := range c.Outputs {
				path := filepath.Join(root, fmt.Sprint(tc.Name, ".", output.Extension))
				if refreshThis {
					c.refreshFile(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading golden file %q: %v", path, err)
					continue
				}

				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if msg := cmp(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

func (c Corpus) refreshFile(t *testing.T, path, text string) {
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while deleting golden file %q: %v", path, err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		t.Errorf("corpora: error while creating golden directory for %q: %v", path, err)
		return
	}
	if err := os.WriteFile(path, []byte(text), 0660); err != nil {
		t.Errorf("corpora: error while writing golden file %q: %v", path, err)
	}
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize the diff so it's easier to read. We're looking for lines that
	// start with a - or a +.
	lines := strings.Split(diff, "\n")
	for i := range lines {
		s := lines[i]
		if strings.HasPrefix(s, "+") {
			lines[i] = "\033[1;92m" + s + "\033[0m"
		} else if strings.HasPrefix(s, "-") {
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}

	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
