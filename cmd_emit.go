package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilexer/compiler"
	"nilexer/disasm"
)

// emitCmd implements the emit command
type emitCmd struct {
	out string
}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Compile a lexer definition and print its disassembly" }
func (*emitCmd) Usage() string {
	return `emit <lexer-definition-file>:
  Compile a lexer definition file and print the assembled bytecode's
  disassembly to stdout.
`
}

func (cmd *emitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "out", "", "write the assembled binary program to this path")
}

func (cmd *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out, err := disasm.Program(prog.Code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 disassembling program: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	fmt.Printf("constant pool: %v\n", prog.ConstantPool)

	if cmd.out != "" {
		if err := writeProgramFile(cmd.out, prog); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
