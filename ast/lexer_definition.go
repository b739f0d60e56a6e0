package ast

// TokenDefinition names one rule a lexer recognizes: the pattern it
// matches, the token type index the VM emits on a match, and a human
// readable name for diagnostics and disassembly.
type TokenDefinition struct {
	Expr  Expr
	Index uint16
	Name  string
}

// LexerDefinition is the input to compiler.CompileLexer: every rule a
// lexer program should recognize. Among rules matching the same input
// length, the one with the higher Index wins (see the VM's
// longest-match-then-priority rule).
type LexerDefinition struct {
	Tokens []TokenDefinition
}
