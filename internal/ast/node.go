// Package ast holds the Avalon front-end's declaration model: the
// syntactic nodes the parser builds, enriched in place as the checker
// resolves names, infers type instances and tracks reachability. A
// Type, Function or Variable here is the same value throughout its
// life — parsed, then mutated by the importer and checker, never
// copied into a second representation.
package ast

import (
	"github.com/avalon-lang/avalon/internal/token"
)

// Node is the base interface every declaration, statement and
// expression node implements.
type Node interface {
	Tok() token.Token
	String() string
}

// base embeds the originating token so every node can report its
// source location without repeating the field everywhere.
type base struct {
	Token token.Token
}

func (b base) Tok() token.Token { return b.Token }

func (b base) pos() string { return b.Token.Position() }
