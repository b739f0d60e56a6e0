// Package pattern parses the small pattern-literal mini-language used to
// write token rules in lexer definition source files: literal
// characters, character classes ("[a-z0-9]"), alternation ("a|b"),
// grouping ("(...)"), concatenation by juxtaposition, and greedy
// repetition ("a*"). It produces ast.Expr trees for compiler.CompileLexer.
//
// This is deliberately not a general regex syntax: there is no "+", "?",
// anchors, or backreferences. Anything beyond this grammar is expected
// to be built directly as an ast.Expr.
package pattern

import (
	"fmt"

	"nilexer/ast"
)

const (
	escapeChar    = '\\'
	altChar       = '|'
	groupOpen     = '('
	groupClose    = ')'
	classOpen     = '['
	classClose    = ']'
	repeatChar    = '*'
	rangeDashChar = '-'
)

var specialChars = map[rune]bool{
	escapeChar: true, altChar: true, groupOpen: true, groupClose: true,
	classOpen: true, classClose: true, repeatChar: true,
}

// Parse compiles a pattern literal into an ast.Expr.
func Parse(text string) (ast.Expr, error) {
	c := newCursor(text)
	expr, err := parseAlt(c)
	if err != nil {
		return nil, err
	}
	if !c.isFinished() {
		return nil, SyntaxError{Column: c.position, Message: fmt.Sprintf("unexpected %q", c.current())}
	}
	return expr, nil
}

// parseAlt parses a '|'-separated list of sequences.
func parseAlt(c *cursor) (ast.Expr, error) {
	first, err := parseSeq(c)
	if err != nil {
		return nil, err
	}

	variants := []ast.Expr{first}
	for c.isMatch(altChar) {
		next, err := parseSeq(c)
		if err != nil {
			return nil, err
		}
		variants = append(variants, next)
	}

	if len(variants) == 1 {
		return first, nil
	}
	return ast.Or{Variants: variants}, nil
}

// parseSeq parses a concatenation of repeat-expressions, stopping at
// '|', ')', or end of input.
func parseSeq(c *cursor) (ast.Expr, error) {
	var exprs []ast.Expr
	for !c.isFinished() && c.current() != altChar && c.current() != groupClose {
		expr, err := parseRepeat(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	if len(exprs) == 0 {
		return nil, SyntaxError{Column: c.position, Message: "empty sequence"}
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return ast.Seq{Exprs: exprs}, nil
}

// parseRepeat parses a single atom optionally followed by '*'.
func parseRepeat(c *cursor) (ast.Expr, error) {
	atom, err := parseAtom(c)
	if err != nil {
		return nil, err
	}
	if c.isMatch(repeatChar) {
		return ast.Loop{Body: atom}, nil
	}
	return atom, nil
}

// parseAtom parses a single character, an escape, a character class, or
// a parenthesized sub-pattern.
func parseAtom(c *cursor) (ast.Expr, error) {
	if c.isFinished() {
		return nil, SyntaxError{Column: c.position, Message: "unexpected end of pattern"}
	}

	switch c.current() {
	case groupOpen:
		c.advance()
		inner, err := parseAlt(c)
		if err != nil {
			return nil, err
		}
		if !c.isMatch(groupClose) {
			return nil, SyntaxError{Column: c.position, Message: "unclosed group, expected ')'"}
		}
		return inner, nil

	case classOpen:
		return parseClass(c)

	case escapeChar:
		c.advance()
		if c.isFinished() {
			return nil, SyntaxError{Column: c.position, Message: "dangling escape at end of pattern"}
		}
		return ast.Single{Ch: unescape(c.advance())}, nil

	default:
		if specialChars[c.current()] {
			return nil, SyntaxError{Column: c.position, Message: fmt.Sprintf("unexpected special character %q", c.current())}
		}
		return ast.Single{Ch: c.advance()}, nil
	}
}

// parseClass parses "[" item+ "]" where each item is either a single
// character or a "from-to" range, combining more than one item with Or.
func parseClass(c *cursor) (ast.Expr, error) {
	c.advance() // consume '['

	var items []ast.Expr
	for !c.isFinished() && c.current() != classClose {
		from := c.advance()
		if from == escapeChar {
			if c.isFinished() {
				return nil, SyntaxError{Column: c.position, Message: "dangling escape in character class"}
			}
			from = unescape(c.advance())
		}

		if c.current() == rangeDashChar {
			c.advance()
			if c.isFinished() || c.current() == classClose {
				// trailing '-' with nothing after it is a literal dash, not a range.
				items = append(items, ast.Single{Ch: from}, ast.Single{Ch: rangeDashChar})
				continue
			}
			to := c.advance()
			if to == escapeChar {
				if c.isFinished() {
					return nil, SyntaxError{Column: c.position, Message: "dangling escape in character class"}
				}
				to = unescape(c.advance())
			}
			items = append(items, ast.Range{From: from, To: to})
			continue
		}

		items = append(items, ast.Single{Ch: from})
	}

	if !c.isMatch(classClose) {
		return nil, SyntaxError{Column: c.position, Message: "unclosed character class, expected ']'"}
	}
	if len(items) == 0 {
		return nil, SyntaxError{Column: c.position, Message: "empty character class"}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return ast.Or{Variants: items}, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}
