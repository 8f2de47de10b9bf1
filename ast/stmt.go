package ast

import "github.com/joeskeen/emojicode/types"

// ExprStmt is an expression evaluated for its effects. Its value, if any, is
// discarded, which makes it the canonical producer of temporaries that the
// end-of-statement release handles.
type ExprStmt struct {
	node
	Expr Expr
}

// NewExprStmt wraps an expression as a statement.
func NewExprStmt(e Expr) *ExprStmt {
	return &ExprStmt{node: node{pos: e.Pos()}, Expr: e}
}

// Function is one function body: the unit the three-pass pipeline runs over.
// Each Function is exclusively owned by its own pipeline instance; nothing
// in it is shared across trees.
type Function struct {
	node

	name      string
	sym       *types.Function
	callee    types.Type
	hasCallee bool

	Body []*ExprStmt
}

// NewFunction creates a function body. sym is the function's own symbol and
// may be nil for free test bodies; it determines the body's error channel
// and whether super calls resolve initializers.
func NewFunction(name string, sym *types.Function, pos SourcePos) *Function {
	return &Function{node: node{pos: pos}, name: name, sym: sym}
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Symbol returns the function's symbol, or nil.
func (f *Function) Symbol() *types.Function { return f.sym }

// SetCalleeType marks this body as running on an instance of t.
func (f *Function) SetCalleeType(t types.Type) {
	f.callee = t
	f.hasCallee = true
}

// CalleeType returns the instance type this body runs on, if any.
func (f *Function) CalleeType() (types.Type, bool) {
	return f.callee, f.hasCallee
}

// AddStatement appends an expression statement to the body.
func (f *Function) AddStatement(e Expr) *ExprStmt {
	stmt := NewExprStmt(e)
	f.Body = append(f.Body, stmt)
	return stmt
}
