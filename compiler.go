package emojicode

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/joeskeen/emojicode/analysis"
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/memflow"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

// Compiler turns analysed-ready function bodies into IR.
//
// The compilation of each body involves three passes, strictly in order:
//  1. Type analysis: every expression computes its exact result type and
//     faults are raised for ill-typed trees.
//  2. Memory-flow analysis: every expression learns how its value flows and
//     temporaries are claimed by their consumers.
//  3. Code generation: every expression lowers itself to IR, releasing
//     unclaimed temporaries at the end of each statement.
//
// Bodies are independent of each other and compile in parallel; the passes
// over any one body never interleave.
type Compiler struct {
	// Named types that syntactic type references in the bodies resolve
	// against.
	Types map[string]types.Type
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom fault and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation on the first fault
	// and ignores all warnings.
	Reporter reporter.Reporter
}

// Compile compiles the given function bodies into IR. The same body may be
// passed more than once; it is compiled once. The returned slice is indexed
// like fns.
func (c *Compiler) Compile(ctx context.Context, fns ...*ast.Function) ([]*ir.Func, error) {
	if len(fns) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	e := executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		results: map[*ast.Function]*result{},
	}

	results := make([]*result, len(fns))
	for i, fn := range fns {
		results[i] = e.compile(ctx, fn)
	}

	irs := make([]*ir.Func, len(fns))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		irs[i] = r.res
	}

	if err := e.h.Err(); err != nil {
		return nil, err
	}
	return irs, nil
}

type result struct {
	ready chan struct{}
	res   *ir.Func
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(f *ir.Func) {
	r.res = f
	close(r.ready)
}

type executor struct {
	c *Compiler
	h *reporter.Handler
	s *semaphore.Weighted

	mu      sync.Mutex
	results map[*ast.Function]*result
}

func (e *executor) compile(ctx context.Context, fn *ast.Function) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[fn]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[fn] = r
	go func() {
		e.doCompile(ctx, fn, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, fn *ast.Function, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	f, err := e.pipeline(fn)
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(f)
}

// pipeline runs the three passes over one body. The body's tree is owned by
// this goroutine for the whole pipeline.
func (e *executor) pipeline(fn *ast.Function) (*ir.Func, error) {
	an := analysis.New(e.h, fn, analysis.WithTypes(e.c.Types))
	if err := an.AnalyseFunction(); err != nil {
		return nil, err
	}

	memflow.New(fn).AnalyseFunction()

	var opts []codegen.Option
	if callee, ok := fn.CalleeType(); ok {
		opts = append(opts, codegen.WithSelf(callee))
	}
	if sym := fn.Symbol(); sym != nil && sym.IsErrorProne() {
		opts = append(opts, codegen.WithErrorChannel(sym.ErrorType()))
	}
	g := codegen.NewFuncGen(fn.Name(), opts...)
	for _, stmt := range fn.Body {
		ast.Generate(stmt.Expr, g)
		g.ReleaseTemporaries()
	}
	g.Ret(ir.Value(0))
	return g.Func(), nil
}
