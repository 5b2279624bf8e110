package main

import (
	"fmt"
	"os"
	"strings"

	"nodelang.dev/nodec/pkg/compiler"

	"github.com/teris-io/cli"
)

var description = strings.ReplaceAll(`
nodec compiles a single source file (organized around named top-level nodes) into
per-node bytecode files plus a serialized node-dependency graph, written under ./comp.
`, "\n", " ")

var NodeCompiler = cli.New(description).
	WithArg(cli.NewArg("input", "The source file to compile")).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	nodes, err := compiler.CompileFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return -1
	}

	for _, name := range nodes {
		fmt.Printf("compiled node %q -> %s/%s.k\n", name, compiler.OutputDir, name)
	}
	return 0
}

func main() { os.Exit(NodeCompiler.Run(os.Args, os.Stdout)) }
