package compiler

import (
	"regexp"
)

// Scanning patterns, tried left to right at every position. Quoted runs come
// first so that a string literal survives as one token; the trailing \S turns
// any other character into a token of its own instead of dropping it.
var (
	basePattern = regexp.MustCompile(
		`"[^"\n]*"|'[^'\n]*'|\w+|==|!=|<=|>=|[+\-*/=<>;,{}()]|\S`)
	extendedPattern = regexp.MustCompile(
		`"[^"\n]*"|'[^'\n]*'|\w+|\*\*|&&|\|\||==|!=|<=|>=|[+\-*/=<>;,{}()]|\S`)

	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// LexerConfig selects the scanning pattern.
type LexerConfig struct {
	// ExtendedOperators makes the lexer recognise **, && and || as single
	// operator tokens. Without it they come out as one-character tokens,
	// Unknown where the character is in no catalog.
	ExtendedOperators bool
}

// Lexer splits a statement into classified tokens. It holds no per-call
// state and may be shared.
type Lexer struct {
	pattern  *regexp.Regexp
	extended bool
}

func NewLexer(cfg LexerConfig) *Lexer {
	l := &Lexer{pattern: basePattern, extended: cfg.ExtendedOperators}
	if cfg.ExtendedOperators {
		l.pattern = extendedPattern
	}
	return l
}

// Lex tokenises src with the default configuration.
func Lex(src string) []Token {
	return NewLexer(DefaultConfig().Lexer).Lex(src)
}

// Lex tokenises src. It never fails: characters outside every catalog
// become Unknown tokens.
func (l *Lexer) Lex(src string) []Token {
	words := l.pattern.FindAllString(src, -1)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{Text: w, Kind: l.classify(w)})
	}
	return tokens
}

// classify applies the catalog tests in their fixed order.
func (l *Lexer) classify(text string) Kind {
	switch {
	case keywords[text]:
		return Keyword
	case operators[text], l.extended && extendedOperators[text]:
		return Operator
	case delimiters[text], groupingDelimiters[text]:
		return Delimiter
	case digitsPattern.MatchString(text):
		return IntegerLiteral
	case identifierPattern.MatchString(text):
		return Identifier
	default:
		return Unknown
	}
}
