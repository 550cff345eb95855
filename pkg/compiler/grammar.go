package compiler

import "slices"

// Rule names reported in Statement.Rule.
const (
	RuleAssignment   = "assignment"
	RuleDeclaration  = "declaration"
	RuleFunctionCall = "function_call"
	RuleIf           = "if"
	RuleElse         = "else"
	RuleWhile        = "while"
	RuleFunctionDef  = "function_def"
)

// catalogRule is a statement shape matched by exact token-kind sequence.
type catalogRule struct {
	name     string
	patterns [][]Kind
}

// catalog lists the fixed-shape rules in match order. Assignment is not in
// the list: it is tried before all of them and parsed by precedence climbing.
var catalog = []catalogRule{
	{RuleDeclaration, [][]Kind{
		{Keyword, Identifier, Operator, Identifier, Delimiter},
		{Keyword, Identifier, Operator, StringLiteral, Delimiter},
	}},
	{RuleFunctionCall, [][]Kind{
		{Identifier, Delimiter, Identifier, Delimiter},
		{Identifier, Delimiter, StringLiteral, Delimiter},
	}},
	{RuleIf, [][]Kind{
		{Keyword, Delimiter, Identifier, Delimiter},
		{Keyword, Delimiter, StringLiteral, Delimiter},
	}},
	{RuleElse, [][]Kind{
		{Keyword},
	}},
	{RuleWhile, [][]Kind{
		{Keyword, Delimiter, Identifier, Delimiter},
		{Keyword, Delimiter, StringLiteral, Delimiter},
	}},
	{RuleFunctionDef, [][]Kind{
		{Keyword, Identifier, Delimiter, Identifier, Delimiter, Identifier, Delimiter},
		{Keyword, Identifier, Delimiter, Delimiter},
	}},
}

// precedence is the binding strength of each binary operator; higher binds
// tighter. && and || only reach the parser when the lexer scans extended
// operators.
var precedence = map[string]int{
	"=": 1, "&&": 1, "||": 1,
	"<": 2, ">": 2, "<=": 2, ">=": 2, "==": 2, "!=": 2,
	"+": 3, "-": 3,
	"*": 4, "/": 4,
	"**": 5,
}

const lowestPrecedence = 1

// matchCatalog returns the first catalog rule whose pattern equals kinds
// exactly, in length and at every position.
func matchCatalog(kinds []Kind) (string, bool) {
	for _, rule := range catalog {
		for _, pattern := range rule.patterns {
			if slices.Equal(pattern, kinds) {
				return rule.name, true
			}
		}
	}
	return "", false
}
