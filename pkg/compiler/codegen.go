package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNodeKind means the generator was handed a node outside the
	// seven tree variants. Parse never produces one.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrUnknownOperator means an operator or I/O operation has no mnemonic.
	ErrUnknownOperator = errors.New("no mnemonic for operator")
)

// operatorMnemonics maps a binary operator to its intermediate mnemonic.
// Comparisons map to the conditional jump that tests them.
var operatorMnemonics = map[string]string{
	"+":  "ADD",
	"-":  "SUB",
	"*":  "IMUL",
	"/":  "IDIV",
	"**": "POWER",
	"=":  "MOV",
	"==": "JE",
	"!=": "JNE",
	"<":  "JL",
	"<=": "JLE",
	">":  "JG",
	">=": "JGE",
	"&&": "AND",
	"||": "OR",
	"!":  "NOT",
}

// ioMnemonics maps an Io operation to the routine call that performs it.
var ioMnemonics = map[string]string{
	"print": "CALL Print",
	"input": "CALL Input",
}

// Mnemonic returns the intermediate mnemonic for a binary operator.
func Mnemonic(op string) (string, bool) {
	m, ok := operatorMnemonics[op]
	return m, ok
}

// CodeGen walks a tree and emits intermediate instruction lines.
type CodeGen struct {
	syms *SymbolTable
	out  []string
}

func newCodeGen(syms *SymbolTable) *CodeGen {
	return &CodeGen{syms: syms}
}

func (cg *CodeGen) line(format string, args ...any) {
	cg.out = append(cg.out, fmt.Sprintf(format, args...))
}

func (cg *CodeGen) comment(format string, args ...any) {
	cg.line("; "+format, args...)
}

func (cg *CodeGen) label(name string) {
	cg.line("%s:", name)
}

// operand records a condition or I/O operand in the symbol table.
func (cg *CodeGen) operand(text string) string {
	kind := SymVariable
	if digitsPattern.MatchString(text) || isQuoted(text) {
		kind = SymLiteral
	}
	cg.syms.Reference(text, kind)
	return text
}

// genExpr lowers an operand and returns the location holding its value: the
// leaf text itself, or the temporary written by a binary expression.
func (cg *CodeGen) genExpr(e Expr) (string, error) {
	switch n := e.(type) {
	case *Leaf:
		kind := SymVariable
		if n.Kind != LeafIdentifier {
			kind = SymLiteral
		}
		cg.syms.Reference(n.Value, kind)
		return n.Value, nil

	case *BinaryExpr:
		left, err := cg.genExpr(n.Left)
		if err != nil {
			return "", err
		}
		right, err := cg.genExpr(n.Right)
		if err != nil {
			return "", err
		}
		mnemonic, ok := operatorMnemonics[n.Op]
		if !ok {
			return "", fmt.Errorf("%w %q", ErrUnknownOperator, n.Op)
		}
		temp := cg.syms.NewTemp()
		cg.line("MOV %s, %s", temp, left)
		cg.line("%s %s, %s", mnemonic, temp, right)
		return temp, nil
	}
	return "", fmt.Errorf("%w: %T in operand position", ErrUnknownNodeKind, e)
}

func (cg *CodeGen) genBlock(nodes []Node) error {
	for _, n := range nodes {
		if err := cg.genNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (cg *CodeGen) genNode(n Node) error {
	switch n := n.(type) {

	case *Assignment:
		loc, err := cg.genExpr(n.Right)
		if err != nil {
			return err
		}
		cg.syms.Reference(n.Left, SymVariable)
		cg.line("MOV %s, %s", n.Left, loc)

	case *BinaryExpr:
		if _, err := cg.genExpr(n); err != nil {
			return err
		}

	case *Leaf:
		// A bare operand computes nothing.
		if _, err := cg.genExpr(n); err != nil {
			return err
		}

	case *Conditional:
		// The true label is allocated before the end label.
		trueLabel := cg.syms.NewLabel()
		cg.line("CMP %s, %s", cg.operand(n.Condition.Operand1), cg.operand(n.Condition.Operand2))
		cg.line("JE %s", trueLabel)
		if err := cg.genBlock(n.TrueBlock); err != nil {
			return err
		}
		if len(n.FalseBlock) > 0 {
			endLabel := cg.syms.NewLabel()
			cg.line("JMP %s", endLabel)
			if err := cg.genBlock(n.FalseBlock); err != nil {
				return err
			}
			cg.label(endLabel)
		}
		cg.label(trueLabel)

	case *Loop:
		start := cg.syms.NewLabel()
		end := cg.syms.NewLabel()
		cg.label(start)
		cg.line("CMP %s, %s", cg.operand(n.Condition.Operand1), cg.operand(n.Condition.Operand2))
		cg.line("JE %s", end)
		if err := cg.genBlock(n.Body); err != nil {
			return err
		}
		cg.line("JMP %s", start)
		cg.label(end)

	case *Function:
		cg.syms.Reference(n.Name, SymProcedure)
		cg.line("PROC %s", n.Name)
		for _, param := range n.Parameters {
			cg.syms.Reference(param, SymParameter)
			cg.comment("param %s", param)
		}
		if err := cg.genBlock(n.Body); err != nil {
			return err
		}
		cg.line("RET")

	case *Io:
		mnemonic, ok := ioMnemonics[n.Operation]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownOperator, n.Operation)
		}
		cg.line("%s %s", mnemonic, cg.operand(n.Variable))

	default:
		return fmt.Errorf("%w: %T", ErrUnknownNodeKind, n)
	}
	return nil
}

// Generate lowers node into intermediate instruction lines. Temporaries and
// labels are drawn from syms, which should be fresh for every compilation.
func Generate(node Node, syms *SymbolTable) ([]string, error) {
	cg := newCodeGen(syms)
	if err := cg.genNode(node); err != nil {
		return nil, err
	}
	if cg.out == nil {
		return []string{}, nil
	}
	return cg.out, nil
}
