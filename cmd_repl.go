package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"nilexer/compiler"
	"nilexer/token"
	"nilexer/vm"
)

// replCmd implements the repl command
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive lexing session" }
func (*replCmd) Usage() string {
	return `repl <lexer-definition-file>:
  Compile the lexer definition once, then tokenize each line of input
  typed at the prompt.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 lexer definition file not provided\n")
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

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 starting readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("Welcome to the nilexer REPL. Type a line of input to see its tokens; exit with Ctrl-D.")

	vmInstance := vm.New(prog)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		session := vmInstance.NewSession(line)
		for {
			tok, err := session.Next()
			if err != nil {
				fmt.Fprintf(os.Stderr, "💥 lexing: %v\n", err)
				break
			}
			if tok.TypeIndex == token.EndIndex {
				break
			}
			if tok.TypeIndex == token.ErrorIndex {
				fmt.Printf("  ERROR len=%d\n", tok.Length)
				continue
			}
			fmt.Printf("  %s len=%d\n", tokenName(definition, tok.TypeIndex), tok.Length)
		}
	}
}
