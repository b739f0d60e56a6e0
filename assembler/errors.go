package assembler

import "fmt"

// OverflowError reports that an operand does not fit in the field width
// its opcode requires. Construction errors like this one are programmer
// errors: the assembler aborts rather than silently truncating or
// producing an ill-formed program.
type OverflowError struct {
	Field string
	Value uint32
	Max   uint32
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("💥 assembler: %s value %d overflows field (max %d)", e.Field, e.Value, e.Max)
}

// PatchError reports misuse of the patch-handle API: finishing a program
// with unresolved handles outstanding (see Assembler.Finish). Patching a
// handle a second time is not reported.
type PatchError struct {
	Message string
}

func (e PatchError) Error() string {
	return fmt.Sprintf("💥 assembler: %s", e.Message)
}
