package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/Tani1964/compiler-api/pkg/asm"
)

// InvalidSyntaxAST is what the AST slot of a result holds when parsing failed.
const InvalidSyntaxAST = "invalid syntax"

// Config holds the settings shared by every compilation of a Compiler.
type Config struct {
	Lexer LexerConfig
}

// DefaultConfig scans the multi-character operators **, && and ||.
func DefaultConfig() Config {
	return Config{Lexer: LexerConfig{ExtendedOperators: true}}
}

// Compiler runs the four stages. It keeps only its configuration; every
// call to Compile builds its own lexer, parser, symbol table and code
// generator, so one Compiler may serve concurrent callers.
type Compiler struct {
	cfg Config
}

func NewCompiler(cfg Config) *Compiler {
	return &Compiler{cfg: cfg}
}

func (c *Compiler) Config() Config { return c.cfg }

// Result carries the output of every stage for one statement.
type Result struct {
	Source string
	Tokens []Token

	// Rule is the grammar rule that matched; empty on invalid syntax.
	Rule string
	// AST is nil when parsing failed or the matched rule builds no tree.
	AST       Node
	SyntaxErr error

	IntermediateCode []string
	MachineLines     []asm.Line
	MachineCode      string

	Symbols *SymbolTable
}

// Valid reports whether the statement matched a grammar rule.
func (r *Result) Valid() bool { return r.SyntaxErr == nil }

// Generated reports whether code generation ran.
func (r *Result) Generated() bool { return r.AST != nil }

// ASTText renders the AST slot: the tree, the invalid syntax sentinel, or
// the name of a rule that has no tree builder.
func (r *Result) ASTText() string {
	switch {
	case r.SyntaxErr != nil:
		return InvalidSyntaxAST
	case r.AST == nil:
		return "matched rule: " + r.Rule
	default:
		return r.AST.String()
	}
}

// MarshalJSON writes the stage record consumed by the HTTP transport.
func (r *Result) MarshalJSON() ([]byte, error) {
	var ast any = r.ASTText()
	if r.AST != nil {
		ast = r.AST
	}
	tokens := r.Tokens
	if tokens == nil {
		tokens = []Token{}
	}
	code := r.IntermediateCode
	if code == nil {
		code = []string{}
	}
	var errText string
	if r.SyntaxErr != nil {
		errText = r.SyntaxErr.Error()
	}
	return json.Marshal(struct {
		Tokens           []Token  `json:"tokens"`
		AST              any      `json:"ast"`
		IntermediateCode []string `json:"intermediate_code"`
		MachineCode      string   `json:"machine_code"`
		Rule             string   `json:"rule,omitempty"`
		Error            string   `json:"error,omitempty"`
	}{tokens, ast, code, r.MachineCode, r.Rule, errText})
}

// Compile runs the pipeline over src with the default configuration.
func Compile(src string) (*Result, error) {
	return NewCompiler(DefaultConfig()).Compile(src)
}

// Compile runs the pipeline over src. Invalid syntax is not an error: it is
// reported in Result.SyntaxErr and stops the pipeline before code
// generation. The returned error is reserved for a tree the generator
// cannot lower.
func (c *Compiler) Compile(src string) (*Result, error) {
	res := &Result{
		Source:           src,
		IntermediateCode: []string{},
		Symbols:          NewSymbolTable(),
	}

	res.Tokens = NewLexer(c.cfg.Lexer).Lex(src)

	stmt, err := NewParser(res.Tokens).Parse()
	if err != nil {
		res.SyntaxErr = err
		return res, nil
	}
	res.Rule = stmt.Rule
	if stmt.Node == nil {
		return res, nil
	}
	res.AST = stmt.Node

	code, err := Generate(stmt.Node, res.Symbols)
	if err != nil {
		return res, fmt.Errorf("codegen: %w", err)
	}
	res.IntermediateCode = code

	res.MachineLines = asm.EncodeLines(code)
	res.MachineCode = asm.Render(res.MachineLines)
	return res, nil
}
