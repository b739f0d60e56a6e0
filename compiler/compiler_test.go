package compiler

import (
	"testing"

	"nilexer/ast"
	"nilexer/bytecode"
)

func decodeAll(t *testing.T, code []bytecode.Word) []bytecode.Instruction {
	t.Helper()
	instrs := make([]bytecode.Instruction, len(code))
	for i, w := range code {
		instr, err := bytecode.Decode(w)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		instrs[i] = instr
	}
	return instrs
}

func TestCompileSingleTokenWithAlternation(t *testing.T) {
	expr := ast.Seq{Exprs: []ast.Expr{
		ast.Single{Ch: 'a'},
		ast.Single{Ch: 'b'},
		ast.Or{Variants: []ast.Expr{ast.Single{Ch: 'c'}, ast.Single{Ch: 'd'}}},
	}}
	def := ast.LexerDefinition{Tokens: []ast.TokenDefinition{
		{Expr: expr, Index: 2, Name: "foo"},
	}}

	c := New()
	prog, err := c.CompileLexer(def)
	if err != nil {
		t.Fatalf("CompileLexer: %v", err)
	}

	instrs := decodeAll(t, prog.Code)
	if len(instrs) != 7 {
		t.Fatalf("expected 7 instructions, got %d: %+v", len(instrs), instrs)
	}
	if instrs[0].Op != bytecode.SplitMany {
		t.Errorf("instr 0: expected split_many, got %v", instrs[0].Op)
	}
	if instrs[1].Op != bytecode.CharImm || instrs[1].Operand != 'a' {
		t.Errorf("instr 1: got %+v", instrs[1])
	}
	if instrs[2].Op != bytecode.CharImm || instrs[2].Operand != 'b' {
		t.Errorf("instr 2: got %+v", instrs[2])
	}
	if instrs[3].Op != bytecode.Split {
		t.Errorf("instr 3: expected split, got %v", instrs[3].Op)
	}
	if instrs[3].First != 4 || instrs[3].Second != 5 {
		t.Errorf("instr 3 targets: got (%d, %d), want (4, 5)", instrs[3].First, instrs[3].Second)
	}
	if instrs[6].Op != bytecode.Match || instrs[6].Operand != 2 {
		t.Errorf("instr 6: got %+v", instrs[6])
	}
}

func TestCompileRange(t *testing.T) {
	def := ast.LexerDefinition{Tokens: []ast.TokenDefinition{
		{Expr: ast.Range{From: 'a', To: 'z'}, Index: 2, Name: "foo"},
	}}

	c := New()
	prog, err := c.CompileLexer(def)
	if err != nil {
		t.Fatalf("CompileLexer: %v", err)
	}

	instrs := decodeAll(t, prog.Code)
	if len(instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(instrs))
	}
	if instrs[1].Op != bytecode.RangeImm || instrs[1].First != 'a' || instrs[1].Second != 'z' {
		t.Errorf("instr 1: got %+v", instrs[1])
	}
}

func TestCompileMultipleTokens(t *testing.T) {
	first := ast.Seq{Exprs: []ast.Expr{ast.Single{Ch: 'a'}, ast.Single{Ch: 'b'}}}
	second := ast.Seq{Exprs: []ast.Expr{ast.Single{Ch: 'c'}, ast.Single{Ch: 'd'}}}
	def := ast.LexerDefinition{Tokens: []ast.TokenDefinition{
		{Expr: first, Index: 2, Name: "foo"},
		{Expr: second, Index: 3, Name: "bar"},
	}}

	c := New()
	prog, err := c.CompileLexer(def)
	if err != nil {
		t.Fatalf("CompileLexer: %v", err)
	}

	instrs := decodeAll(t, prog.Code)
	if len(instrs) != 7 {
		t.Fatalf("expected 7 instructions, got %d", len(instrs))
	}
	marker, _ := bytecode.Decode(prog.Code[0])
	tableStart := marker.Operand
	if prog.ConstantPool[tableStart] != 2 {
		t.Fatalf("expected 2 fan-out entries, got %d", prog.ConstantPool[tableStart])
	}
	if prog.ConstantPool[tableStart+1] != 1 || prog.ConstantPool[tableStart+2] != 4 {
		t.Errorf("fan-out targets: got (%d, %d), want (1, 4)", prog.ConstantPool[tableStart+1], prog.ConstantPool[tableStart+2])
	}
}

func TestCompileLoop(t *testing.T) {
	def := ast.LexerDefinition{Tokens: []ast.TokenDefinition{
		{Expr: ast.Loop{Body: ast.Single{Ch: 'a'}}, Index: 2, Name: "as"},
	}}

	c := New()
	prog, err := c.CompileLexer(def)
	if err != nil {
		t.Fatalf("CompileLexer: %v", err)
	}

	instrs := decodeAll(t, prog.Code)
	if instrs[1].Op != bytecode.Split {
		t.Fatalf("expected split at loop entry, got %v", instrs[1].Op)
	}
	if instrs[2].Op != bytecode.CharImm {
		t.Errorf("expected char_imm body, got %v", instrs[2].Op)
	}
	if instrs[3].Op != bytecode.Jmp || instrs[3].Operand != 1 {
		t.Errorf("expected jmp back to split (1), got %+v", instrs[3])
	}
}

func TestCompileRejectsReservedIndex(t *testing.T) {
	def := ast.LexerDefinition{Tokens: []ast.TokenDefinition{
		{Expr: ast.Single{Ch: 'a'}, Index: 0, Name: "bad"},
	}}

	c := New()
	if _, err := c.CompileLexer(def); err == nil {
		t.Fatalf("expected ReservedIndexError")
	} else if _, ok := err.(ReservedIndexError); !ok {
		t.Errorf("expected ReservedIndexError, got %T", err)
	}
}
