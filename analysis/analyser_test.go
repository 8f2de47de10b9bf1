package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeskeen/emojicode/analysis"
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

func at(line, col int) ast.SourcePos {
	return ast.SourcePos{Filename: "🐟.emojic", Line: line, Col: col}
}

func newAnalyser(registry map[string]types.Type) *analysis.Analyser {
	handler := reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
	fn := ast.NewFunction("t", nil, at(1, 1))
	return analysis.New(handler, fn, analysis.WithTypes(registry))
}

func TestExpectTypeInsertsUpcast(t *testing.T) {
	t.Parallel()

	animal := types.NewClass("🐾", nil)
	fish := types.NewClass("🐟", animal)
	want := types.ClassInstance(animal)

	// A call of a callable returning the subclass, expected as the
	// superclass.
	sig := types.Callable(nil, types.ClassInstance(fish))
	call := ast.NewCallableCall(ast.NewClosure(sig, at(1, 2)), ast.NewArguments(at(1, 2)), at(1, 1))
	slot := ast.Expr(call)

	a := newAnalyser(nil)
	got, err := a.ExpectType(want, &slot)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	up, ok := slot.(*ast.Reinterpretation)
	require.True(t, ok, "expected a reinterpretation above the call, got %T", slot)
	assert.True(t, up.ExpressionType().Equal(want))
	assert.Same(t, ast.Expr(call), up.Child())
	assert.Equal(t, call.Pos(), up.Pos())
}

func TestExpectTypeInsertsOptionalBox(t *testing.T) {
	t.Parallel()

	want := types.Optional(types.Integer())
	slot := ast.Expr(ast.NewIntLiteral(3, at(1, 1)))

	a := newAnalyser(nil)
	got, err := a.ExpectType(want, &slot)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	box, ok := slot.(*ast.OptionalBox)
	require.True(t, ok, "expected an optional box above the literal, got %T", slot)
	assert.True(t, box.ExpressionType().Equal(want))
}

func TestExpectTypeMismatch(t *testing.T) {
	t.Parallel()

	slot := ast.Expr(ast.NewIntLiteral(3, at(1, 1)))
	a := newAnalyser(nil)

	_, err := a.ExpectType(types.Boolean(), &slot)
	var fault reporter.ErrorWithPos
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, reporter.TagSemantic, fault.Tag())
}

func TestAnalyseExprLeavesExactTypeAlone(t *testing.T) {
	t.Parallel()

	slot := ast.Expr(ast.NewIntLiteral(3, at(1, 1)))
	a := newAnalyser(nil)

	got, err := a.AnalyseExpr(&slot, types.Expect(types.Integer()))
	require.NoError(t, err)
	assert.True(t, got.Equal(types.Integer()))
	_, isLiteral := slot.(*ast.IntLiteral)
	assert.True(t, isLiteral, "no wrapper expected, got %T", slot)
}

func TestResolveType(t *testing.T) {
	t.Parallel()

	fish := types.ClassInstance(types.NewClass("🐟", nil))
	a := newAnalyser(map[string]types.Type{"🐟": fish})

	node := ast.NewTypeNode("🐟", at(1, 1))
	got, err := a.ResolveType(node)
	require.NoError(t, err)
	assert.True(t, got.Equal(fish))

	// Resolution is recorded on the node.
	recorded, ok := node.Resolved()
	require.True(t, ok)
	assert.True(t, recorded.Equal(fish))

	// A second resolve returns the recorded result.
	again, err := a.ResolveType(node)
	require.NoError(t, err)
	assert.True(t, again.Equal(fish))

	_, err = a.ResolveType(ast.NewTypeNode("👻", at(1, 1)))
	var fault reporter.ErrorWithPos
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, reporter.TagSemantic, fault.Tag())
}

func TestFaultsReachHandler(t *testing.T) {
	t.Parallel()

	var seen []reporter.Tag
	handler := reporter.NewHandler(reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			seen = append(seen, err.Tag())
			return nil
		}, nil))
	fn := ast.NewFunction("t", nil, at(1, 1))
	fn.AddStatement(ast.NewCallableCall(ast.NewIntLiteral(1, at(1, 2)), ast.NewArguments(at(1, 1)), at(1, 1)))

	a := analysis.New(handler, fn)
	require.Error(t, a.AnalyseFunction())
	assert.Equal(t, []reporter.Tag{reporter.TagSemantic}, seen)
	assert.True(t, handler.ReportedErrors())
	assert.ErrorIs(t, handler.Err(), reporter.ErrInvalidSource)
}

func TestScope(t *testing.T) {
	t.Parallel()

	scope := analysis.NewScope()
	x := scope.Declare("x", types.Integer())
	y := scope.Declare("y", types.Boolean())

	id, ok := scope.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, x, id)
	assert.True(t, scope.VariableType(x).Equal(types.Integer()))
	assert.True(t, scope.VariableType(y).Equal(types.Boolean()))

	// Shadowing issues a fresh ID; the old one stays valid.
	x2 := scope.Declare("x", types.Boolean())
	assert.NotEqual(t, x, x2)
	id, ok = scope.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, x2, id)
	assert.True(t, scope.VariableType(x).Equal(types.Integer()))
	assert.Equal(t, 3, scope.Len())

	_, ok = scope.Lookup("z")
	assert.False(t, ok)
}
