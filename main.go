//go:build !js

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Tani1964/compiler-api/pkg/compiler"
	"github.com/Tani1964/compiler-api/pkg/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compiler-api", flag.ContinueOnError)
	expr := fs.String("e", "", "statement to compile")
	inPath := fs.String("in", "", "file holding the statement to compile")
	outPath := fs.String("out", "", "write machine code to this file")
	asJSON := fs.Bool("json", false, "print the stage record as JSON")
	baseOps := fs.Bool("base-ops", false, "scan only the base operator set (no **, &&, ||)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if (*expr == "") == (*inPath == "") {
		fs.Usage()
		return errors.New("provide exactly one of -e or -in")
	}

	src := *expr
	if *inPath != "" {
		var err error
		if src, err = utils.ReadSource(*inPath); err != nil {
			return err
		}
	}

	cfg := compiler.DefaultConfig()
	if *baseOps {
		cfg.Lexer.ExtendedOperators = false
	}

	res, err := compiler.NewCompiler(cfg).Compile(src)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printStages(stdout, res)
	}

	if *outPath != "" && res.Generated() {
		if err := utils.WriteMachineCode(*outPath, res.MachineCode); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %d machine code lines -> %s\n", len(res.MachineLines), *outPath)
	}

	return res.SyntaxErr
}

func printStages(w io.Writer, res *compiler.Result) {
	fmt.Fprintf(w, "Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		fmt.Fprintln(w, " ", tok)
	}
	fmt.Fprintf(w, "\nAST\n  %s\n", res.ASTText())

	fmt.Fprintln(w, "\nIntermediate Code")
	for _, line := range res.IntermediateCode {
		fmt.Fprintln(w, " ", line)
	}

	fmt.Fprintln(w, "\nMachine Code")
	if res.MachineCode != "" {
		for _, line := range strings.Split(res.MachineCode, "\n") {
			fmt.Fprintln(w, " ", line)
		}
	}
}
