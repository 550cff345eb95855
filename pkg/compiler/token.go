package compiler

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Kind identifies the category of a lexed token.
type Kind int

const (
	Unknown        Kind = iota // not recognised by any catalog or pattern
	Keyword                    // if, else, while, ...
	Operator                   // + - * / = < > <= >= == !=
	Delimiter                  // ; , { } and the grouping ( )
	Identifier                 // variable / function name
	IntegerLiteral             // all-digit word
	StringLiteral              // quoted text, assigned by the parser's reclassification pass
)

// kindNames is indexed by Kind and holds the wire names used in stage output.
var kindNames = [...]string{
	Unknown:        "unknown",
	Keyword:        "keyword",
	Operator:       "operator",
	Delimiter:      "delimiter",
	Identifier:     "identifier",
	IntegerLiteral: "int",
	StringLiteral:  "string",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Text string
	Kind Kind
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %q", t.Kind, t.Text)
}

// MarshalJSON encodes a token as the pair [text, kind].
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{t.Text, t.Kind.String()})
}

// Catalogs. They are part of the external contract and never change at runtime.
var (
	keywordList   = []string{"if", "else", "while", "for", "int", "float", "char"}
	operatorList  = []string{"+", "-", "*", "/", "=", "<", ">", "<=", ">=", "==", "!="}
	delimiterList = []string{";", ",", "{", "}"}

	keywords   = setOf(keywordList...)
	operators  = setOf(operatorList...)
	delimiters = setOf(delimiterList...)

	// groupingDelimiters classify as Delimiter but are not part of the delimiter catalog.
	groupingDelimiters = setOf("(", ")")

	// extendedOperators are only scanned when LexerConfig.ExtendedOperators is set.
	extendedOperators = setOf("**", "&&", "||")
)

func setOf(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func IsKeyword(s string) bool   { return keywords[s] }
func IsOperator(s string) bool  { return operators[s] }
func IsDelimiter(s string) bool { return delimiters[s] }

// Keywords returns a copy of the keyword catalog.
func Keywords() []string { return slices.Clone(keywordList) }

// Operators returns a copy of the operator catalog.
func Operators() []string { return slices.Clone(operatorList) }

// Delimiters returns a copy of the delimiter catalog.
func Delimiters() []string { return slices.Clone(delimiterList) }
