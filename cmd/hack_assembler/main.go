package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"go.hmny.dev/n2t-core/pkg/asm"
	"go.hmny.dev/n2t-core/pkg/config"
	"go.hmny.dev/n2t-core/pkg/hack"
)

var Description = strings.ReplaceAll(`
The Hack Assembler takes assembly language code written in the Hack assembly language
and translates it into machine code that can be executed by the Hack computer. The process
involves cleaning the source, parsing it, resolving symbols and generating machine code.
`, "\n", " ")

var HackAssembler = cli.New(Description).
	WithOption(cli.NewOption("source", "The assembler (.asm) file to be compiled").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("dest", "The compiled binary output (.hack)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("config", "Optional TOML file overriding predefined symbols").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	source, dest := options["source"], options["dest"]
	if source == "" || dest == "" {
		fmt.Printf("ERROR: both '--source' and '--dest' are required, use --help\n")
		return -1
	}

	cfg, err := config.LoadOptional(options["config"])
	if err != nil {
		fmt.Printf("ERROR: unable to load config: %s\n", err)
		return -1
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		fmt.Printf("ERROR: unable to open source file: %s\n", err)
		return -1
	}

	// Stage 1: reduce the raw source to comment-free, whitespace-stripped lines.
	cleaned := asm.CleanSource(string(raw))

	// Stage 2: parse the cleaned lines into an in-memory asm.Program.
	parser := asm.NewParser(strings.NewReader(strings.Join(cleaned, "\n")))
	program, err := parser.Parse()
	if err != nil {
		fmt.Printf("ERROR: unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	// Stage 3: two-pass symbol resolution, lowering asm.Program to hack.Program.
	resolver := asm.NewResolver(program)
	if len(cfg.PredefinedSymbols) > 0 {
		resolver = resolver.WithPredefinedSymbols(cfg.PredefinedSymbols)
	}
	hackProgram, table, err := resolver.Resolve()
	if err != nil {
		fmt.Printf("ERROR: unable to complete 'resolving' pass: %s\n", err)
		return -1
	}

	// Stage 4: encode each resolved instruction into its 16-bit binary form.
	codegen := hack.NewCodeGenerator(hackProgram, table)
	compiled, err := codegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	var out strings.Builder
	for _, line := range compiled {
		out.WriteString(line)
		out.WriteString("\n")
	}

	if err := os.WriteFile(dest, []byte(out.String()), 0o644); err != nil {
		fmt.Printf("ERROR: unable to write output file: %s\n", err)
		return -1
	}

	return 0
}

func main() { os.Exit(HackAssembler.Run(os.Args, os.Stdout)) }
