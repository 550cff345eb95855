package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSyntax is returned (wrapped) by Parse when no grammar rule
// accepts the token sequence.
var ErrInvalidSyntax = errors.New("invalid syntax")

// Statement is the outcome of a successful match. Node is set only for
// assignment; the fixed-shape catalog rules have no tree builder and report
// just the rule name.
type Statement struct {
	Rule string
	Node Node
}

// Parser matches a token sequence against the statement catalog and builds
// the expression tree for assignments.
//
// Grammar:
//
//	statement  = assignment | <catalog shape>
//	assignment = IDENTIFIER "=" expression EOF
//	expression = operand (OPERATOR expression)*      precedence climbing, left associative
//	operand    = IDENTIFIER | INTEGER | STRING | "(" expression ")"
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser copies tokens and reclassifies quoted text as StringLiteral.
func NewParser(tokens []Token) *Parser {
	toks := make([]Token, len(tokens))
	for i, t := range tokens {
		if isQuoted(t.Text) {
			t.Kind = StringLiteral
		}
		toks[i] = t
	}
	return &Parser{tokens: toks}
}

// Parse runs a fresh Parser over tokens.
func Parse(tokens []Token) (Statement, error) {
	return NewParser(tokens).Parse()
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

// errorf wraps ErrInvalidSyntax with a position and message.
func (p *Parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: token %d: %s", ErrInvalidSyntax, p.pos+1, msg)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok, _ := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// Parse tries the assignment rule first, then the fixed-shape catalog in
// order. A failed assignment parse is reported only when no catalog rule
// matches either.
func (p *Parser) Parse() (Statement, error) {
	var assignErr error
	if p.isAssignment() {
		node, err := p.parseAssignment()
		if err == nil {
			return Statement{Rule: RuleAssignment, Node: node}, nil
		}
		assignErr = err
	}

	kinds := make([]Kind, len(p.tokens))
	for i, t := range p.tokens {
		kinds[i] = t.Kind
	}
	if name, ok := matchCatalog(kinds); ok {
		return Statement{Rule: name}, nil
	}

	if assignErr != nil {
		return Statement{}, assignErr
	}
	p.pos = 0
	return Statement{}, p.errorf("no grammar rule matches [%s]", kindList(kinds))
}

// isAssignment reports whether the tokens start with  IDENTIFIER "="  and
// have at least one token after it.
func (p *Parser) isAssignment() bool {
	return len(p.tokens) >= 3 &&
		p.tokens[0].Kind == Identifier &&
		p.tokens[1].Kind == Operator &&
		p.tokens[1].Text == "="
}

// parseAssignment parses  IDENTIFIER = expression  and requires every token
// to be consumed.
func (p *Parser) parseAssignment() (Node, error) {
	p.pos = 2
	right, err := p.parseBinary(lowestPrecedence)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.errorf("unexpected %s %q after expression", tok.Kind, tok.Text)
	}
	return &Assignment{Left: p.tokens[0].Text, Right: right}, nil
}

// parseBinary is the precedence-climbing loop. It folds every operator whose
// precedence is at least minPrec into a new node with the operand parsed so
// far, parsing the right operand one level tighter.
func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != Operator {
			break
		}
		prec, known := precedence[tok.Text]
		if !known || prec < minPrec {
			break
		}
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right}
	}

	return left, nil
}

// parsePrimary handles identifiers, literals and parenthesised expressions.
func (p *Parser) parsePrimary() (Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorf("expected operand, reached end of input")
	}

	switch {
	case tok.Kind == Identifier:
		p.advance()
		return &Leaf{Value: tok.Text, Kind: LeafIdentifier}, nil

	case tok.Kind == IntegerLiteral:
		p.advance()
		return &Leaf{Value: tok.Text, Kind: LeafNumber}, nil

	case tok.Kind == StringLiteral:
		p.advance()
		return &Leaf{Value: tok.Text, Kind: LeafString}, nil

	case tok.Text == "(":
		p.advance()
		expr, err := p.parseBinary(lowestPrecedence)
		if err != nil {
			return nil, err
		}
		if closing, ok := p.peek(); !ok || closing.Text != ")" {
			return nil, p.errorf("expected ')' to close '('")
		}
		p.advance()
		return expr, nil

	default:
		return nil, p.errorf("expected operand, got %s %q", tok.Kind, tok.Text)
	}
}

func kindList(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " ")
}
