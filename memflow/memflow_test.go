package memflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeskeen/emojicode/analysis"
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/memflow"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

func at(line, col int) ast.SourcePos {
	return ast.SourcePos{Line: line, Col: col}
}

func analyse(t *testing.T, fn *ast.Function) {
	t.Helper()
	a := analysis.New(reporter.NewHandler(nil), fn)
	require.NoError(t, a.AnalyseFunction())
}

func TestStatementValuesStayTemporary(t *testing.T) {
	t.Parallel()

	// A bare closure statement: nothing consumes the value, so the
	// statement releases it.
	node := ast.NewClosure(types.Callable(nil, types.Integer()), at(1, 1))
	fn := ast.NewFunction("t", nil, at(1, 1))
	fn.AddStatement(node)
	analyse(t, fn)

	memflow.New(fn).AnalyseFunction()
	assert.True(t, node.IsTemporary())
	assert.True(t, node.ProducesTemporaryObject())
}

func TestTakeClaimsManagedTemporaries(t *testing.T) {
	t.Parallel()

	fish := types.ClassInstance(types.NewClass("🐟", nil))
	sig := types.Callable(nil, types.Optional(fish))
	call := ast.NewCallableCall(ast.NewClosure(sig, at(1, 3)), ast.NewArguments(at(1, 3)), at(1, 2))
	node := ast.NewConditionalAssignment("x", call, at(1, 1))
	fn := ast.NewFunction("t", nil, at(1, 1))
	fn.AddStatement(node)
	analyse(t, fn)

	memflow.New(fn).AnalyseFunction()

	// The binding consumed the call's value; the closure producing the
	// callable stays the statement's to release.
	assert.False(t, call.IsTemporary())
	assert.False(t, call.ProducesTemporaryObject())
}

func TestTakeIgnoresUnmanagedValues(t *testing.T) {
	t.Parallel()

	// An optional of an unmanaged payload is itself unmanaged: nothing to
	// claim, nothing to release.
	sig := types.Callable(nil, types.Optional(types.Integer()))
	call := ast.NewCallableCall(ast.NewClosure(sig, at(1, 3)), ast.NewArguments(at(1, 3)), at(1, 2))
	node := ast.NewConditionalAssignment("x", call, at(1, 1))
	fn := ast.NewFunction("t", nil, at(1, 1))
	fn.AddStatement(node)
	analyse(t, fn)

	memflow.New(fn).AnalyseFunction()
	assert.True(t, call.IsTemporary())
	assert.False(t, call.ProducesTemporaryObject())
}
