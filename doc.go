// Package emojicode is the middle end of a compiler for a language with
// deterministic reference counting and checked errors. It contains the
// expression-node layer and the machinery to run the three compilation
// passes over function bodies: type analysis, memory-flow analysis, and
// code generation.
//
// The entry point is [Compiler]. A test or frontend builds [ast.Function]
// bodies out of the node kinds in the ast package, registers the named
// types they reference, and calls [Compiler.Compile]. Faults are reported
// through the reporter package; the produced IR is in the ir package.
package emojicode
