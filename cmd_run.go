package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilexer/compiler"
	"nilexer/token"
	"nilexer/vm"
)

// runCmd implements the run command
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Lex an input file against a lexer definition" }
func (*runCmd) Usage() string {
	return `run <lexer-definition-file> <input-file>:
  Compile the lexer definition and tokenize the input file, printing one
  line per token.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "💥 lexer definition file and input file required\n")
		return subcommands.ExitUsageError
	}

	definition, err := loadLexerDefinition(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	prog, err := compiler.New().CompileLexer(definition)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 compiling lexer definition: %v\n", err)
		return subcommands.ExitFailure
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 reading input file: %v\n", err)
		return subcommands.ExitFailure
	}

	session := vm.New(prog).NewSession(string(data))
	for {
		tok, err := session.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 lexing: %v\n", err)
			return subcommands.ExitFailure
		}
		switch tok.TypeIndex {
		case token.EndIndex:
			return subcommands.ExitSuccess
		case token.ErrorIndex:
			fmt.Printf("ERROR len=%d\n", tok.Length)
		default:
			fmt.Printf("%s len=%d\n", tokenName(definition, tok.TypeIndex), tok.Length)
		}
	}
}
