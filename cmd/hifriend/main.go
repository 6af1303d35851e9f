// Command hifriend walks one or more source files and prints the
// type-vertex table the inference core builds for them.
//
// This module ships no production parser (see SPEC_FULL.md "Consumed"):
// the concrete front end that turns source text into an *ast.ProgramNode
// is an external collaborator, wired in with SetParser. Without one,
// analyze/vertices report a clear error instead of guessing a format.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/riseshia/hi-friend/pkg/ast"
	"github.com/riseshia/hi-friend/pkg/typeinfer"
)

const cliToolVersion = "hifriend 0.0.0-dev"

// parseFile turns a source path into a program AST. SetParser overrides
// it; the default always fails, since no parser ships with this module.
var parseFile = func(path string) (*ast.ProgramNode, error) {
	return nil, fmt.Errorf("hifriend: no parser configured for %s; call SetParser with a front end first", path)
}

// SetParser wires in the concrete parser a host program provides.
func SetParser(f func(path string) (*ast.ProgramNode, error)) {
	parseFile = f
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "analyze":
		return runAnalyze(args[1:])
	case "vertices":
		return runVertices(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "hifriend: unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `usage: hifriend <command> [arguments]

commands:
  analyze <file>...   walk one or more files and print their vertex tables
  vertices <file>     print a single file's vertex table as columns
  version             print the CLI version
`)
}

func runAnalyze(paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "hifriend analyze: at least one file is required")
		return 1
	}
	status := 0
	for _, path := range paths {
		if err := analyzeOne(os.Stdout, path); err != nil {
			fmt.Fprintf(os.Stderr, "hifriend: %v\n", err)
			status = 1
		}
	}
	return status
}

func runVertices(paths []string) int {
	if len(paths) != 1 {
		fmt.Fprintln(os.Stderr, "hifriend vertices: exactly one file is required")
		return 1
	}
	if err := analyzeOne(os.Stdout, paths[0]); err != nil {
		fmt.Fprintf(os.Stderr, "hifriend: %v\n", err)
		return 1
	}
	return 0
}

func analyzeOne(w io.Writer, path string) error {
	prog, err := parseFile(path)
	if err != nil {
		return err
	}
	visitor := typeinfer.NewVisitor(path)
	visitor.VisitProgram(prog)
	printVertexTable(w, path, visitor)
	return nil
}

func printVertexTable(w io.Writer, path string, v *typeinfer.Visitor) {
	fmt.Fprintf(w, "%s\n", path)
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tkind\tname\ttype")
	for _, vtx := range v.Vertices.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", vtx.ID, vtx.Kind, vtx.Name, vtx.Infer(v.Methods).ToTS())
	}
	tw.Flush()
}
