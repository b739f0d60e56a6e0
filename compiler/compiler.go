// Package compiler turns an ast.LexerDefinition into an assembled
// bytecode program, dispatching over ast.Expr nodes with the visitor
// pattern.
package compiler

import (
	"nilexer/assembler"
	"nilexer/ast"
	"nilexer/token"
)

// Compiler assembles a bytecode program from a lexer definition. A
// Compiler is reusable across calls to CompileLexer; each call resets
// the underlying assembler.
type Compiler struct {
	asm *assembler.Assembler
}

// New creates a Compiler ready to compile lexer definitions.
func New() *Compiler {
	return &Compiler{asm: assembler.New()}
}

// CompileLexer assembles definition into a Program. Every token's
// pattern is compiled in sequence order behind a single top-level
// SplitMany fan-out, so the VM tries every rule's first instruction in
// one epsilon closure each step (see vm.Session).
func (c *Compiler) CompileLexer(definition ast.LexerDefinition) (assembler.Program, error) {
	c.asm = assembler.New()
	if err := validateIndices(definition); err != nil {
		return assembler.Program{}, err
	}

	marker := c.asm.EmitSplitMany()
	positions := make([]assembler.CodePointer, 0, len(definition.Tokens))
	for _, def := range definition.Tokens {
		positions = append(positions, c.asm.NextCodePosition())
		if err := c.generateTokenExpr(def); err != nil {
			return assembler.Program{}, err
		}
	}
	if err := c.asm.PatchSplitMany(marker, positions); err != nil {
		return assembler.Program{}, err
	}

	return c.asm.Finish()
}

func validateIndices(definition ast.LexerDefinition) error {
	for _, def := range definition.Tokens {
		if def.Index == token.ErrorIndex || def.Index == token.EndIndex {
			return ReservedIndexError{Name: def.Name, Index: def.Index}
		}
	}
	return nil
}

func (c *Compiler) generateTokenExpr(definition ast.TokenDefinition) error {
	if err := c.generate(definition.Expr); err != nil {
		return err
	}
	return c.asm.EmitMatch(definition.Index)
}

// generate dispatches expr to the matching codegen method via the
// ast.ExprVisitor interface, collecting the first error any branch
// produces.
func (c *Compiler) generate(expr ast.Expr) error {
	result := expr.Accept(c)
	if result == nil {
		return nil
	}
	return result.(error)
}

func (c *Compiler) VisitSingle(single ast.Single) any {
	return errOrNil(c.asm.EmitCharImm(single.Ch))
}

func (c *Compiler) VisitRange(rng ast.Range) any {
	return errOrNil(c.asm.EmitRangeImm(rng.From, rng.To))
}

func (c *Compiler) VisitSeq(seq ast.Seq) any {
	for _, e := range seq.Exprs {
		if err := c.generate(e); err != nil {
			return err
		}
	}
	return nil
}

// VisitOr dispatches on variant count: a single variant degenerates to
// its own codegen, two variants use a plain Split, and three or more
// use a SplitMany fan-out.
func (c *Compiler) VisitOr(or ast.Or) any {
	switch len(or.Variants) {
	case 0:
		return DeveloperError{Message: "Or node with no variants reached codegen"}
	case 1:
		return errOrNil(c.generate(or.Variants[0]))
	case 2:
		return errOrNil(c.generateSplit(or.Variants[0], or.Variants[1]))
	default:
		return errOrNil(c.generateSplitMany(or.Variants))
	}
}

func (c *Compiler) generateSplit(left, right ast.Expr) error {
	leftPatch, rightPatch := c.asm.EmitSplit(0, 0)

	leftTarget := c.asm.NextCodePosition()
	if err := c.generate(left); err != nil {
		return err
	}
	rightTarget := c.asm.NextCodePosition()
	if err := c.generate(right); err != nil {
		return err
	}

	if err := c.asm.PatchTarget(leftPatch, leftTarget); err != nil {
		return err
	}
	return c.asm.PatchTarget(rightPatch, rightTarget)
}

func (c *Compiler) generateSplitMany(variants []ast.Expr) error {
	marker := c.asm.EmitSplitMany()
	positions := make([]assembler.CodePointer, 0, len(variants))
	for _, variant := range variants {
		positions = append(positions, c.asm.NextCodePosition())
		if err := c.generate(variant); err != nil {
			return err
		}
	}
	return c.asm.PatchSplitMany(marker, positions)
}

// VisitLoop compiles Body* as the classic Thompson-construction
// fork-body-jump-back loop: a Split forks between entering the body and
// skipping it, the body falls through to a Jmp back to the Split, and
// the Split's other branch targets the instruction after the loop.
func (c *Compiler) VisitLoop(loop ast.Loop) any {
	splitPos := c.asm.NextCodePosition()
	bodyPatch, afterPatch := c.asm.EmitSplit(0, 0)

	bodyTarget := c.asm.NextCodePosition()
	if err := c.generate(loop.Body); err != nil {
		return err
	}
	if err := c.asm.EmitJmp(splitPos); err != nil {
		return err
	}

	afterTarget := c.asm.NextCodePosition()
	if err := c.asm.PatchTarget(bodyPatch, bodyTarget); err != nil {
		return err
	}
	return errOrNil(c.asm.PatchTarget(afterPatch, afterTarget))
}

func errOrNil(err error) any {
	if err != nil {
		return err
	}
	return nil
}
