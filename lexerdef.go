package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"nilexer/ast"
	"nilexer/pattern"
	"nilexer/token"
)

// loadLexerDefinition reads a lexer definition source file: one token
// rule per line, "NAME = pattern", blank lines and lines starting with
// '#' ignored. Rules are assigned token type indices in file order,
// starting at token.FirstUserIndex.
func loadLexerDefinition(path string) (ast.LexerDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return ast.LexerDefinition{}, fmt.Errorf("💥 opening lexer definition: %w", err)
	}
	defer f.Close()

	var tokens []ast.TokenDefinition
	nextIndex := token.FirstUserIndex

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, patternText, ok := strings.Cut(line, "=")
		if !ok {
			return ast.LexerDefinition{}, fmt.Errorf("💥 line %d: expected NAME = pattern, got %q", lineNo, line)
		}
		name = strings.TrimSpace(name)
		patternText = strings.TrimSpace(patternText)

		expr, err := pattern.Parse(patternText)
		if err != nil {
			return ast.LexerDefinition{}, fmt.Errorf("💥 line %d: %w", lineNo, err)
		}

		tokens = append(tokens, ast.TokenDefinition{Expr: expr, Index: nextIndex, Name: name})
		nextIndex++
	}
	if err := scanner.Err(); err != nil {
		return ast.LexerDefinition{}, fmt.Errorf("💥 reading lexer definition: %w", err)
	}
	if len(tokens) == 0 {
		return ast.LexerDefinition{}, fmt.Errorf("💥 lexer definition %s declares no tokens", path)
	}

	return ast.LexerDefinition{Tokens: tokens}, nil
}

// tokenName resolves a token type index back to the rule name it was
// assigned in loadLexerDefinition, for diagnostic output.
func tokenName(definition ast.LexerDefinition, index uint16) string {
	for _, def := range definition.Tokens {
		if def.Index == index {
			return def.Name
		}
	}
	return fmt.Sprintf("#%d", index)
}
