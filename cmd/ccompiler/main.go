package main

import (
	"fmt"
	"os"

	"github.com/Tani1964/compiler-api/pkg/asm"
	"github.com/Tani1964/compiler-api/pkg/compiler"
	"github.com/Tani1964/compiler-api/pkg/utils"
)

const testSource = `a=b+c`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		data, err := utils.ReadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = data
	}

	fmt.Printf("Source:\n%s\n\n", src)

	// Lex
	tokens := compiler.Lex(src)

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	stmt, err := compiler.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	fmt.Printf("AST (rule %s)\n", stmt.Rule)
	if stmt.Node == nil {
		fmt.Println("  no tree for this rule")
		return
	}
	fmt.Println(" ", stmt.Node)
	fmt.Println()

	// code Generation
	syms := compiler.NewSymbolTable()
	code, err := compiler.Generate(stmt.Node, syms)
	if err != nil {
		fmt.Fprintln(os.Stderr, "codegen error:", err)
		os.Exit(1)
	}

	fmt.Println("Intermediate Code")
	for _, line := range code {
		fmt.Println(" ", line)
	}
	fmt.Println()

	// Encode
	lines := asm.EncodeLines(code)
	fmt.Println("Machine Code")
	for _, l := range lines {
		fmt.Printf("  %-28s %s\n", l.Source, l)
	}
	if bad := asm.Unsupported(lines); len(bad) > 0 {
		fmt.Fprintf(os.Stderr, "%d unsupported instruction(s)\n", len(bad))
	}
	fmt.Println()
	fmt.Print(syms)
}
