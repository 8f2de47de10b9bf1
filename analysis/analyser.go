// Package analysis implements the expression analyser: the part of the type
// checker that expression nodes call back into while analysing themselves.
// It owns the per-function scope and raises all faults through the
// compilation's reporter handler.
package analysis

import (
	"github.com/joeskeen/emojicode/ast"
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/reporter"
	"github.com/joeskeen/emojicode/types"
)

// Analyser drives type analysis over one function body. It implements
// [ast.Analyser].
type Analyser struct {
	handler  *reporter.Handler
	fn       *ast.Function
	scope    *Scope
	registry map[string]types.Type
}

// Option configures an Analyser.
type Option func(*Analyser)

// WithTypes provides the named types syntactic type references resolve
// against.
func WithTypes(registry map[string]types.Type) Option {
	return func(a *Analyser) { a.registry = registry }
}

// New creates an analyser for one function body.
func New(handler *reporter.Handler, fn *ast.Function, opts ...Option) *Analyser {
	a := &Analyser{handler: handler, fn: fn, scope: NewScope()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Scope returns the function's variable scope.
func (a *Analyser) Scope() *Scope { return a.scope }

// AnalyseFunction runs the type-analysis pass over the whole body,
// statements in order. A fault aborts analysis of this function; faults are
// already reported to the handler when this returns.
func (a *Analyser) AnalyseFunction() error {
	for _, stmt := range a.fn.Body {
		if _, err := a.AnalyseExpr(&stmt.Expr, types.NoExpectation()); err != nil {
			return err
		}
	}
	return nil
}

// AnalyseExpr implements [ast.Analyser]. After the child's own analysis it
// applies the expectation: a value of a subclass is reinterpreted up to the
// expected class, and a value usable as an optional's payload is boxed into
// the optional. Both rewrites insert a node above the child through slot.
func (a *Analyser) AnalyseExpr(slot *ast.Expr, expectation types.Expectation) (types.Type, error) {
	t, err := ast.Analyse(*slot, a, expectation)
	if err != nil {
		return types.NoReturn(), err
	}

	expected, ok := expectation.Type()
	if !ok || t.Equal(expected) || !t.AssignableTo(expected) {
		return t, nil
	}
	if _, optional := expected.OptionalPayload(); optional {
		box := ast.Insert(slot, func(child ast.Expr) *ast.OptionalBox {
			return ast.NewOptionalBox(child, expected)
		})
		return box.ExpressionType(), nil
	}
	if t.Kind() == types.KindClass && expected.Kind() == types.KindClass {
		up := ast.Insert(slot, func(child ast.Expr) *ast.Reinterpretation {
			return ast.NewReinterpretation(child, expected)
		})
		return up.ExpressionType(), nil
	}
	return t, nil
}

// ExpectType implements [ast.Analyser]: analyse the child and require the
// result to be usable where target is expected.
func (a *Analyser) ExpectType(target types.Type, slot *ast.Expr) (types.Type, error) {
	t, err := a.AnalyseExpr(slot, types.Expect(target))
	if err != nil {
		return types.NoReturn(), err
	}
	if !t.AssignableTo(target) {
		return types.NoReturn(), a.SemanticFault((*slot).Pos(), "expected %v, got %v", target, t)
	}
	return t, nil
}

// ResolveType implements [ast.Analyser].
func (a *Analyser) ResolveType(node *ast.TypeNode) (types.Type, error) {
	if t, ok := node.Resolved(); ok {
		return t, nil
	}
	t, ok := a.registry[node.Name()]
	if !ok {
		return types.NoReturn(), a.SemanticFault(node.Pos(), "no such type %s", node.Name())
	}
	node.SetResolved(t)
	return t, nil
}

// DeclareVariable implements [ast.Analyser].
func (a *Analyser) DeclareVariable(name string, t types.Type) codegen.VariableID {
	return a.scope.Declare(name, t)
}

// CalleeType implements [ast.Analyser].
func (a *Analyser) CalleeType() (types.Type, bool) {
	return a.fn.CalleeType()
}

// Function implements [ast.Analyser].
func (a *Analyser) Function() *types.Function {
	return a.fn.Symbol()
}

// fault reports a tagged fault to the handler and returns it. The fault
// aborts analysis of this function body even when the handler elects to
// keep the compilation going for other bodies.
func (a *Analyser) fault(tag reporter.Tag, pos ast.SourcePos, format string, args ...any) error {
	err := reporter.Errorf(tag, pos, format, args...)
	if abort := a.handler.HandleError(err); abort != nil {
		return abort
	}
	return err
}

// SemanticFault implements [ast.Analyser].
func (a *Analyser) SemanticFault(pos ast.SourcePos, format string, args ...any) error {
	return a.fault(reporter.TagSemantic, pos, format, args...)
}

// UnresolvedMemberFault implements [ast.Analyser].
func (a *Analyser) UnresolvedMemberFault(pos ast.SourcePos, format string, args ...any) error {
	return a.fault(reporter.TagUnresolvedMember, pos, format, args...)
}

// UnhandledErrorFault implements [ast.Analyser].
func (a *Analyser) UnhandledErrorFault(pos ast.SourcePos, format string, args ...any) error {
	return a.fault(reporter.TagUnhandledError, pos, format, args...)
}

// SuperContextFault implements [ast.Analyser].
func (a *Analyser) SuperContextFault(pos ast.SourcePos, format string, args ...any) error {
	return a.fault(reporter.TagSuperContext, pos, format, args...)
}

var _ ast.Analyser = (*Analyser)(nil)
