package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeskeen/emojicode/analysis"
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/memflow"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

func at(line, col int) ast.SourcePos {
	return ast.SourcePos{Filename: "🐟.emojic", Line: line, Col: col}
}

// collectingHandler swallows faults so that analysis returns the raw fault
// for inspection instead of an abort decision.
func collectingHandler() *reporter.Handler {
	return reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
}

func analyserFor(fn *ast.Function, registry map[string]types.Type) *analysis.Analyser {
	return analysis.New(collectingHandler(), fn, analysis.WithTypes(registry))
}

// analyseAndFlow runs the first two passes over a body built for a test.
func analyseAndFlow(t *testing.T, fn *ast.Function, registry map[string]types.Type) {
	t.Helper()
	require.NoError(t, analyserFor(fn, registry).AnalyseFunction())
	memflow.New(fn).AnalyseFunction()
}

func assertTag(t *testing.T, err error, tag reporter.Tag) {
	t.Helper()
	var fault reporter.ErrorWithPos
	require.ErrorAs(t, err, &fault)
	require.Equal(t, tag, fault.Tag())
}

// newOptionalCall builds a call of a fresh closure returning an optional of
// payload: the simplest expression producing an optional value.
func newOptionalCall(payload types.Type, pos ast.SourcePos) *ast.CallableCall {
	sig := types.Callable(nil, types.Optional(payload))
	return ast.NewCallableCall(ast.NewClosure(sig, pos), ast.NewArguments(pos), pos)
}
