package assembler

import (
	"encoding/binary"
	"fmt"
	"io"

	"nilexer/bytecode"
)

// header precedes the code and pool sections of a persisted Program: the
// word count of each section, little-endian, so a reader can allocate
// both slices before decoding their contents.
type header struct {
	CodeLen uint32
	PoolLen uint32
}

// WriteProgram serializes a Program as a fixed header followed by its
// code words and then its constant pool, all little-endian uint32s.
func WriteProgram(w io.Writer, p Program) error {
	h := header{CodeLen: uint32(len(p.Code)), PoolLen: uint32(len(p.ConstantPool))}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("assembler: writing header: %w", err)
	}
	for _, word := range p.Code {
		if err := binary.Write(w, binary.LittleEndian, uint32(word)); err != nil {
			return fmt.Errorf("assembler: writing code: %w", err)
		}
	}
	for _, v := range p.ConstantPool {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("assembler: writing pool: %w", err)
		}
	}
	return nil
}

// ReadProgram reads back a Program written by WriteProgram.
func ReadProgram(r io.Reader) (Program, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Program{}, fmt.Errorf("assembler: reading header: %w", err)
	}

	code := make([]bytecode.Word, h.CodeLen)
	for i := range code {
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return Program{}, fmt.Errorf("assembler: reading code[%d]: %w", i, err)
		}
		code[i] = bytecode.Word(v)
	}

	pool := make([]uint32, h.PoolLen)
	for i := range pool {
		if err := binary.Read(r, binary.LittleEndian, &pool[i]); err != nil {
			return Program{}, fmt.Errorf("assembler: reading pool[%d]: %w", i, err)
		}
	}

	return Program{Code: code, ConstantPool: pool}, nil
}
