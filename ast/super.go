package ast

import (
	"github.com/joeskeen/emojicode/codegen"
	"github.com/joeskeen/emojicode/ir"
	"github.com/joeskeen/emojicode/types"
)

// Super invokes a superclass member (🐿): inside an initializer it resolves
// to a superclass initializer, inside a method to the superclass method of
// the given name and mood. Dispatch is non-dynamic.
type Super struct {
	CallBase

	name string
	args *Arguments

	// Set during analysis.
	function *types.Function
	init     bool
	// A super initializer call's error-proneness cannot be known from the
	// syntax; it must be read off the resolved initializer's signature and
	// then enforced through the normal call contract.
	manageErrorProneness bool
}

// NewSuper creates a superclass invocation of the named member.
func NewSuper(name string, args *Arguments, pos SourcePos) *Super {
	return &Super{CallBase: newCallBase(pos), name: name, args: args}
}

// Function returns the resolved superclass member. Nil before analysis.
func (s *Super) Function() *types.Function { return s.function }

// IsInitializerCall reports whether this invocation resolved to a superclass
// initializer. Valid after analysis.
func (s *Super) IsInitializerCall() bool { return s.init }

// ErrorType implements [Call].
func (s *Super) ErrorType() types.Type {
	if s.function == nil {
		return types.NoReturn()
	}
	return s.function.ErrorType()
}

// IsErrorProne implements [Call].
func (s *Super) IsErrorProne() bool {
	if s.init {
		return s.manageErrorProneness
	}
	return s.function != nil && s.function.IsErrorProne()
}

func (s *Super) analyse(a Analyser, expectation types.Expectation) (types.Type, error) {
	callee, ok := a.CalleeType()
	if !ok || callee.Class() == nil {
		return types.NoReturn(), a.SuperContextFault(s.Pos(), "🐿 can only be used inside a class")
	}
	super := callee.Class().Superclass()
	if super == nil {
		return types.NoReturn(), a.SuperContextFault(s.Pos(), "class %s has no superclass", callee.Class().Name())
	}

	enclosing := a.Function()
	if enclosing != nil && enclosing.IsInitializer() {
		if err := s.analyseSuperInit(a, super); err != nil {
			return types.NoReturn(), err
		}
	} else {
		s.function = super.LookupMethod(s.name, s.args.Mood())
		if s.function == nil {
			return types.NoReturn(), a.UnresolvedMemberFault(s.Pos(),
				"superclass %s has no method %s%v", super.Name(), s.name, s.args.Mood())
		}
	}

	if err := s.args.analyse(a, s.function.Parameters(), s.Pos()); err != nil {
		return types.NoReturn(), err
	}
	if err := s.ensureErrorIsHandled(a, s); err != nil {
		return types.NoReturn(), err
	}
	if s.init {
		// A super initializer call initializes the callee in place and
		// produces no value.
		return types.NoReturn(), nil
	}
	return s.function.ReturnType(), nil
}

func (s *Super) analyseSuperInit(a Analyser, super *types.Class) error {
	initializer := super.LookupInitializer(s.name)
	if initializer == nil {
		return a.UnresolvedMemberFault(s.Pos(),
			"superclass %s has no initializer %s", super.Name(), s.name)
	}
	s.init = true
	s.function = initializer
	s.analyseSuperInitErrorProneness(a, initializer)
	return nil
}

func (s *Super) analyseSuperInitErrorProneness(a Analyser, initializer *types.Function) {
	if !initializer.IsErrorProne() {
		return
	}
	s.manageErrorProneness = true
	enclosing := a.Function()
	if enclosing != nil && enclosing.IsErrorProne() &&
		initializer.ErrorType().AssignableTo(enclosing.ErrorType()) {
		// The enclosing initializer rethrows through its own error channel,
		// which accounts for the error.
		s.SetHandledError()
	}
}

func (s *Super) analyseMemoryFlow(a FlowAnalyser, category FlowCategory) {
	s.args.analyseMemoryFlow(a)
}

func (s *Super) generate(g *codegen.FuncGen) ir.Value {
	args := s.args.generate(g)
	dest, rethrow := s.errorDestination(g, s)
	result := g.CallSuper(s.function, g.Self(), args, dest)
	if rethrow {
		emitRethrow(g, dest)
	}
	if s.init {
		return ir.Value(0)
	}
	return s.handleResult(g, result, ir.Value(0))
}
