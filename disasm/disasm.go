// Package disasm renders a bytecode.Word as the human-readable
// instruction form the CLI's "emit" subcommand prints.
package disasm

import (
	"fmt"
	"strings"

	"nilexer/bytecode"
)

// Decode is bytecode.Decode under a name local callers expect; kept
// distinct from the codec package's own Decode so disasm call sites
// read as "disassemble this word" rather than "decode this word".
func Decode(w bytecode.Word) (bytecode.Instruction, error) {
	return bytecode.Decode(w)
}

// Format renders a single decoded instruction the way the original
// lexer VM's disassembler did: opcode name followed by its named
// operands.
func Format(instr bytecode.Instruction) string {
	switch instr.Op {
	case bytecode.CharImm:
		return fmt.Sprintf("char_imm ch: %c", rune(instr.Operand))
	case bytecode.CharCp:
		return fmt.Sprintf("char_cp ch_index: %d", instr.Operand)
	case bytecode.Match:
		return fmt.Sprintf("match token_type_index: %d", instr.Operand)
	case bytecode.Split:
		return fmt.Sprintf("split then_instr_index: %d else_instr_index: %d", instr.First, instr.Second)
	case bytecode.Jmp:
		return fmt.Sprintf("jmp instr_index: %d", instr.Operand)
	case bytecode.SplitMany:
		return fmt.Sprintf("split_many table_index: %d", instr.Operand)
	case bytecode.RangeImm:
		return fmt.Sprintf("range_imm from: %c to: %c", rune(instr.First), rune(instr.Second))
	default:
		return instr.Op.String()
	}
}

// Program renders every instruction in code, one per line, prefixed with
// its code position.
func Program(code []bytecode.Word) (string, error) {
	var b strings.Builder
	for pos, w := range code {
		instr, err := Decode(w)
		if err != nil {
			return "", fmt.Errorf("disasm: instruction %d: %w", pos, err)
		}
		fmt.Fprintf(&b, "%4d: %s\n", pos, Format(instr))
	}
	return b.String(), nil
}
