// Package token defines the tokens a lexer bytecode VM session emits.
package token

import "fmt"

// Reserved token type indices. User token definitions must use indices
// starting at FirstUserIndex; the compiler rejects any TokenDefinition
// that claims ErrorIndex or EndIndex for itself.
const (
	ErrorIndex = uint16(0)
	EndIndex   = uint16(1)

	FirstUserIndex = uint16(2)
)

// Token is one entry of a lexing session's output: the byte length the
// match consumed and the token type index the VM assigned it.
//
// A Token with TypeIndex == ErrorIndex is a run of input bytes no rule
// matched, accumulated until the next successful match (see vm.Session).
// A Token with TypeIndex == EndIndex and Length == 0 always terminates
// the stream.
type Token struct {
	Length    uint32
	TypeIndex uint16
}

// New constructs a Token for a user-defined match.
func New(length uint32, typeIndex uint16) Token {
	return Token{Length: length, TypeIndex: typeIndex}
}

// Error constructs the error token covering length bytes of unmatched
// input.
func Error(length uint32) Token {
	return Token{Length: length, TypeIndex: ErrorIndex}
}

// End is the single token that always terminates a lexing session.
func End() Token {
	return Token{Length: 0, TypeIndex: EndIndex}
}

func (t Token) String() string {
	switch t.TypeIndex {
	case ErrorIndex:
		return fmt.Sprintf("Token {Error, len: %d}", t.Length)
	case EndIndex:
		return "Token {End}"
	default:
		return fmt.Sprintf("Token {type: %d, len: %d}", t.TypeIndex, t.Length)
	}
}
