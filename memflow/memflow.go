// Package memflow implements the memory-flow pass: the middle pass that
// decides, for every expression, whether its value is borrowed, escapes, or
// is returned, and which temporaries are claimed by a consumer rather than
// released at the end of their statement.
package memflow

import (
	"github.com/joeskeen/emojicode/ast"
)

// FunctionAnalyser runs the memory-flow pass over one function body. It
// implements [ast.FlowAnalyser].
type FunctionAnalyser struct {
	fn *ast.Function
}

// New creates a memory-flow analyser for one function body. The body must
// already have been type-analysed.
func New(fn *ast.Function) *FunctionAnalyser {
	return &FunctionAnalyser{fn: fn}
}

// AnalyseFunction runs the pass over the whole body, statements in order.
// Statement-level expressions are borrowing: nothing consumes their value.
func (m *FunctionAnalyser) AnalyseFunction() {
	for _, stmt := range m.fn.Body {
		m.AnalyseExpr(stmt.Expr, ast.FlowBorrowing)
	}
}

// AnalyseExpr implements [ast.FlowAnalyser].
func (m *FunctionAnalyser) AnalyseExpr(e ast.Expr, category ast.FlowCategory) {
	ast.AnalyseMemoryFlow(e, m, category)
}

// Take implements [ast.FlowAnalyser]: the caller consumes e's value, so a
// temporary produced by e must not be released with the statement's
// temporaries.
func (m *FunctionAnalyser) Take(e ast.Expr) {
	if e.ProducesTemporaryObject() {
		ast.UnsetIsTemporary(e)
	}
}

var _ ast.FlowAnalyser = (*FunctionAnalyser)(nil)
