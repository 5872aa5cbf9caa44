package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"go.hmny.dev/n2t-core/pkg/config"
	"go.hmny.dev/n2t-core/pkg/jack"
)

var Description = strings.ReplaceAll(`
The Jack Compiler Front End tokenizes and parses a single Jack source file and
emits its parse tree as XML, matching the nand2tetris course tool's output.
It does not perform semantic analysis or generate VM code.
`, "\n", " ")

var JackCompiler = cli.New(Description).
	WithOption(cli.NewOption("source", "The source (.jack) file to be parsed").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("dest", "The XML parse tree output (.xml)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("config", "Optional TOML file overriding the XML indent width").
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

	input, err := os.Open(source)
	if err != nil {
		fmt.Printf("ERROR: unable to open source file: %s\n", err)
		return -1
	}
	defer input.Close()

	parser := jack.NewParser(input)
	root, err := parser.Parse()
	if err != nil {
		fmt.Printf("ERROR: unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	var out strings.Builder
	if err := jack.SerializeIndent(&out, root, cfg.XMLIndentWidth); err != nil {
		fmt.Printf("ERROR: unable to complete 'serialization' pass: %s\n", err)
		return -1
	}

	if err := os.WriteFile(dest, []byte(out.String()), 0o644); err != nil {
		fmt.Printf("ERROR: unable to write output file: %s\n", err)
		return -1
	}

	return 0
}

func main() { os.Exit(JackCompiler.Run(os.Args, os.Stdout)) }
