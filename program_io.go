package main

import (
	"fmt"
	"os"

	"nilexer/assembler"
)

// writeProgramFile persists an assembled program to path using the
// assembler package's flat little-endian binary layout.
func writeProgramFile(path string, prog assembler.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("💥 creating %s: %w", path, err)
	}
	defer f.Close()

	if err := assembler.WriteProgram(f, prog); err != nil {
		return fmt.Errorf("💥 writing program to %s: %w", path, err)
	}
	return nil
}
