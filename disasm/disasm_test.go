package disasm

import (
	"strings"
	"testing"

	"nilexer/bytecode"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		word bytecode.Word
		want string
	}{
		{"char_imm", bytecode.Encode(bytecode.CharImm, 'a'), "char_imm ch: a"},
		{"match", bytecode.Encode(bytecode.Match, 2), "match token_type_index: 2"},
		{"jmp", bytecode.Encode(bytecode.Jmp, 5), "jmp instr_index: 5"},
		{"split", bytecode.EncodeBinary(bytecode.Split, 1, 3), "split then_instr_index: 1 else_instr_index: 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr, err := Decode(tt.word)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := Format(instr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgram(t *testing.T) {
	code := []bytecode.Word{
		bytecode.Encode(bytecode.CharImm, 'a'),
		bytecode.Encode(bytecode.Match, 2),
	}
	out, err := Program(code)
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	if !strings.Contains(out, "char_imm ch: a") || !strings.Contains(out, "match token_type_index: 2") {
		t.Errorf("unexpected output: %q", out)
	}
}
