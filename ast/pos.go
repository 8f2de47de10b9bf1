package ast

import "fmt"

// SourcePos identifies a location in an Emojicode source file. Columns count
// grapheme clusters, not bytes, since Emojicode identifiers are emoji
// sequences that may span several runes.
type SourcePos struct {
	Filename string
	Line     int // one-based
	Col      int // one-based, in grapheme clusters
	Offset   int // zero-based byte offset
}

func (pos SourcePos) String() string {
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// Node is anything in the syntax tree with a source position. Positions are
// set at construction and never change; a node inserted above another during
// tree rewriting adopts the wrapped node's position.
type Node interface {
	Pos() SourcePos
}

// node implements the position part of Node and is embedded by every
// syntax-tree type.
type node struct {
	pos SourcePos
}

func (n *node) Pos() SourcePos { return n.pos }
