package compiler

import (
	"fmt"
	"strings"
)

type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymLiteral
	SymTemporary
	SymLabel
	SymProcedure
	SymParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymLiteral:
		return "literal"
	case SymTemporary:
		return "temporary"
	case SymLabel:
		return "label"
	case SymProcedure:
		return "procedure"
	case SymParameter:
		return "parameter"
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

type Symbol struct {
	Name  string
	Kind  SymbolKind
	Order int // position of first use during lowering
}

// SymbolTable is the per-compilation context of the code generator. It owns
// the temporary and label counters, which start at zero for every table, and
// records each operand name the first time lowering touches it.
//
// A SymbolTable must not be reused across compilations.
type SymbolTable struct {
	symbols   map[string]Symbol
	order     []string
	nextTemp  int
	nextLabel int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// NewTemp allocates the next temporary: temp0, temp1, ...
func (s *SymbolTable) NewTemp() string {
	name := fmt.Sprintf("temp%d", s.nextTemp)
	s.nextTemp++
	s.Reference(name, SymTemporary)
	return name
}

// NewLabel allocates the next label: label0, label1, ...
func (s *SymbolTable) NewLabel() string {
	name := fmt.Sprintf("label%d", s.nextLabel)
	s.nextLabel++
	s.Reference(name, SymLabel)
	return name
}

// Reference records name with kind unless it is already known; the first
// recorded kind wins.
func (s *SymbolTable) Reference(name string, kind SymbolKind) Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	sym := Symbol{Name: name, Kind: kind, Order: len(s.order)}
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return sym
}

func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns every recorded symbol in first-use order.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, len(s.order))
	for i, name := range s.order {
		out[i] = s.symbols[name]
	}
	return out
}

// Temporaries returns how many temporaries have been allocated.
func (s *SymbolTable) Temporaries() int { return s.nextTemp }

// Labels returns how many labels have been allocated.
func (s *SymbolTable) Labels() int { return s.nextLabel }

func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.order) == 0 {
		sb.WriteString("Symbols: (empty)\n")
		return sb.String()
	}
	sb.WriteString("Symbols:\n")
	for _, sym := range s.Symbols() {
		fmt.Fprintf(&sb, "  %-20s  Kind: %s\n", sym.Name, sym.Kind)
	}
	fmt.Fprintf(&sb, "Temporaries: %d  Labels: %d\n", s.nextTemp, s.nextLabel)
	return sb.String()
}
