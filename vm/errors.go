package vm

import (
	"errors"
	"fmt"
)

// errDone is returned by Session.Next once the stream's terminal End
// token has already been produced; callers should stop calling Next.
var errDone = errors.New("vm: session already finished")

// MalformedProgramError reports that the VM decoded an instruction its
// bytecode form does not support — an out-of-range opcode, or a branch
// target/pool index pointing outside the program. A program assembled
// by package assembler can never produce one; seeing this error means
// the program bytes came from somewhere else (e.g. a corrupted
// persisted file) and the session aborts rather than reading out of
// bounds.
type MalformedProgramError struct {
	Position int
	Message  string
}

func (e MalformedProgramError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: malformed program at %d: %s", e.Position, e.Message)
}
