// interfaces.go contains the visitor interface that any code traversing
// pattern AST nodes must implement, and the Expr interface all pattern
// nodes satisfy via the visitor design pattern.

package ast

// ExprVisitor is the interface for operating on all Expr AST nodes. Any
// type that wants to perform an operation on a pattern tree (compiling it
// to bytecode, printing it, walking it for analysis) implements this
// interface.
//
// Each Visit method corresponds to a distinct Expr variant.
type ExprVisitor interface {
	// VisitSingle is called when visiting a single-character match.
	VisitSingle(single Single) any

	// VisitRange is called when visiting an inclusive character range.
	VisitRange(rng Range) any

	// VisitOr is called when visiting an alternation between two or more
	// variants.
	VisitOr(or Or) any

	// VisitSeq is called when visiting a concatenation of sub-expressions.
	VisitSeq(seq Seq) any

	// VisitLoop is called when visiting a greedy repetition. See Loop's
	// doc comment.
	VisitLoop(loop Loop) any
}

// Expr is the core interface for all pattern AST nodes. Any node type
// (single character, range, alternation, sequence) must implement this
// interface. Accept enables the visitor pattern so operations (codegen,
// printing) can be added without changing the node types themselves.
type Expr interface {
	// Accept dispatches this node to the appropriate method on v.
	Accept(v ExprVisitor) any
}
