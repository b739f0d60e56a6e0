package pattern

import "fmt"

// SyntaxError reports a malformed pattern literal: an unclosed group, an
// empty alternative, a dangling escape, or similar.
type SyntaxError struct {
	Column  int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 pattern: %s, column: %d", e.Message, e.Column)
}
