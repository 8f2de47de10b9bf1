package emojicode_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeskeen/emojicode"
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

func at(line, col int) ast.SourcePos {
	return ast.SourcePos{Filename: "🐟.emojic", Line: line, Col: col}
}

// intCallBody builds a body with a single statement calling a fresh closure.
func intCallBody(name string) *ast.Function {
	sig := types.Callable(nil, types.Integer())
	call := ast.NewCallableCall(ast.NewClosure(sig, at(1, 2)), ast.NewArguments(at(1, 2)), at(1, 1))
	fn := ast.NewFunction(name, nil, at(1, 1))
	fn.AddStatement(call)
	return fn
}

func TestCompileParallelBodies(t *testing.T) {
	t.Parallel()

	fns := make([]*ast.Function, 16)
	for i := range fns {
		fns[i] = intCallBody(fmt.Sprintf("f%d", i))
	}

	c := &emojicode.Compiler{MaxParallelism: 4}
	irs, err := c.Compile(context.Background(), fns...)
	require.NoError(t, err)
	require.Len(t, irs, len(fns))
	for i, f := range irs {
		require.NotNil(t, f)
		assert.Equal(t, fns[i].Name(), f.Name)
		assert.Positive(t, f.NumInstrs())
	}
}

func TestCompileSameBodyOnce(t *testing.T) {
	t.Parallel()

	fn := intCallBody("once")
	c := &emojicode.Compiler{}

	// Passing the same body twice must not run the passes twice.
	irs, err := c.Compile(context.Background(), fn, fn)
	require.NoError(t, err)
	require.Len(t, irs, 2)
	assert.Same(t, irs[0], irs[1])
}

func TestCompileFault(t *testing.T) {
	t.Parallel()

	fn := ast.NewFunction("bad", nil, at(1, 1))
	fn.AddStatement(ast.NewTypeAsValue(ast.NewTypeNode("👻", at(1, 2)), at(1, 1)))

	c := &emojicode.Compiler{}
	_, err := c.Compile(context.Background(), fn)
	var fault reporter.ErrorWithPos
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, reporter.TagSemantic, fault.Tag())
	assert.Equal(t, at(1, 2), fault.Position())
}

func TestCompileReportsThroughReporter(t *testing.T) {
	t.Parallel()

	var seen []reporter.Tag
	rep := reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		seen = append(seen, err.Tag())
		return nil
	}, nil)

	fn := ast.NewFunction("bad", nil, at(1, 1))
	fn.AddStatement(ast.NewSizeOf(ast.NewTypeNode("👻", at(1, 2)), at(1, 1)))

	c := &emojicode.Compiler{Reporter: rep}
	_, err := c.Compile(context.Background(), fn)
	require.Error(t, err)
	assert.Equal(t, []reporter.Tag{reporter.TagSemantic}, seen)
}

func TestCompileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &emojicode.Compiler{MaxParallelism: 1}
	_, err := c.Compile(ctx, intCallBody("f"))
	assert.Error(t, err)
}
