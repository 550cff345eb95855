package compiler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is implemented by the seven tree variants the code generator accepts.
// The set is closed: the marker method is unexported.
type Node interface {
	node()
	String() string
}

// Expr is implemented by nodes that can appear as an operand: Leaf and
// BinaryExpr.
type Expr interface {
	Node
	exprNode()
}

//  Expression nodes

// LeafKind tells what a Leaf holds.
type LeafKind int

const (
	LeafIdentifier LeafKind = iota
	LeafNumber
	LeafString
)

func (k LeafKind) String() string {
	switch k {
	case LeafIdentifier:
		return "identifier"
	case LeafNumber:
		return "number"
	case LeafString:
		return "string"
	}
	return fmt.Sprintf("LeafKind(%d)", int(k))
}

// Leaf is an identifier, a numeric literal or a quoted string literal.
//
//	a = b + 10
//	    ^   ^^  Leaf{Value: "b"}, Leaf{Value: "10", Kind: LeafNumber}
type Leaf struct {
	Value string
	Kind  LeafKind
}

func (*Leaf) node()                          {}
func (*Leaf) exprNode()                      {}
func (l *Leaf) String() string               { return l.Value }
func (l *Leaf) MarshalJSON() ([]byte, error) { return json.Marshal(l.Value) }

// BinaryExpr represents Left Op Right.
//
//	b + c
//	^ ^ ^
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("BinaryExpr(%s, %s, %s)", b.Op, b.Left, b.Right)
}

func (b *BinaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operator string `json:"operator"`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
	}{b.Op, b.Left, b.Right})
}

//  Statement nodes

// Assignment represents  Left = Right.
type Assignment struct {
	Left  string
	Right Expr
}

func (*Assignment) node() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(left=%s, right=%s)", a.Left, a.Right)
}

func (a *Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Left     string `json:"left"`
		Right    Expr   `json:"right"`
	}{"assignment", "=", a.Left, a.Right})
}

// Condition is the operand pair compared by CMP.
type Condition struct {
	Operand1 string `json:"operand1"`
	Operand2 string `json:"operand2"`
}

func (c Condition) String() string { return c.Operand1 + ", " + c.Operand2 }

// Conditional represents if (cond) { TrueBlock } [else { FalseBlock }].
type Conditional struct {
	Condition  Condition
	TrueBlock  []Node
	FalseBlock []Node // may be empty
}

func (*Conditional) node() {}
func (c *Conditional) String() string {
	if len(c.FalseBlock) > 0 {
		return fmt.Sprintf("Conditional(cond=%s, true=%s, false=%s)", c.Condition, block(c.TrueBlock), block(c.FalseBlock))
	}
	return fmt.Sprintf("Conditional(cond=%s, true=%s)", c.Condition, block(c.TrueBlock))
}

func (c *Conditional) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string    `json:"type"`
		Condition  Condition `json:"condition"`
		TrueBlock  []Node    `json:"true_block"`
		FalseBlock []Node    `json:"false_block,omitempty"`
	}{"conditional", c.Condition, nonNil(c.TrueBlock), c.FalseBlock})
}

// Loop represents while (cond) { Body }.
type Loop struct {
	Condition Condition
	Body      []Node
}

func (*Loop) node() {}
func (l *Loop) String() string {
	return fmt.Sprintf("Loop(cond=%s, body=%s)", l.Condition, block(l.Body))
}

func (l *Loop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string    `json:"type"`
		Condition Condition `json:"condition"`
		Body      []Node    `json:"body"`
	}{"loop", l.Condition, nonNil(l.Body)})
}

// Function represents a procedure definition.
type Function struct {
	Name       string
	Parameters []string
	Body       []Node
}

func (*Function) node() {}
func (f *Function) String() string {
	return fmt.Sprintf("Function(%s, params=%v, body=%s)", f.Name, f.Parameters, block(f.Body))
}

func (f *Function) MarshalJSON() ([]byte, error) {
	params := f.Parameters
	if params == nil {
		params = []string{}
	}
	return json.Marshal(struct {
		Type       string   `json:"type"`
		Name       string   `json:"name"`
		Parameters []string `json:"parameters"`
		Body       []Node   `json:"body"`
	}{"function", f.Name, params, nonNil(f.Body)})
}

// Io represents print(x) or input(x).
type Io struct {
	Operation string // "print" or "input"
	Variable  string
}

func (*Io) node()            {}
func (i *Io) String() string { return fmt.Sprintf("Io(%s %s)", i.Operation, i.Variable) }

func (i *Io) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		Operation string `json:"operation"`
		Variable  string `json:"variable"`
	}{"io", i.Operation, i.Variable})
}

func block(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

func nonNil(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}
