package asm

import (
	"strings"
)

// UnsupportedPrefix starts the diagnostic emitted in place of a line whose
// mnemonic has no opcode.
const UnsupportedPrefix = "; Unsupported instruction: "

// Line is the encoding of one intermediate instruction.
type Line struct {
	Source    string // the instruction as given
	Mnemonic  string
	Opcode    string // bit pattern; empty when unsupported
	Operands  string // operand text, passed through untouched
	Supported bool
	Comment   bool // informational line, passed through verbatim
}

// String renders the machine code line.
func (l Line) String() string {
	if l.Comment {
		return l.Source
	}
	if !l.Supported {
		return UnsupportedPrefix + l.Source
	}
	if l.Operands == "" {
		return l.Opcode
	}
	return l.Opcode + " " + l.Operands
}

// Encode translates intermediate instructions to newline-joined machine
// code. It never fails: an instruction it cannot encode becomes an inline
// diagnostic and encoding carries on with the next one.
func Encode(instructions []string) string {
	return Render(EncodeLines(instructions))
}

// Render joins encoded lines into machine code text.
func Render(lines []Line) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

// EncodeLines encodes each instruction and reports the per-line result.
// Blank instructions are skipped.
func EncodeLines(instructions []string) []Line {
	lines := make([]Line, 0, len(instructions))
	for _, raw := range instructions {
		l, ok := encodeLine(raw)
		if !ok {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// Unsupported returns the lines that could not be encoded, comments excluded.
func Unsupported(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if !l.Supported && !l.Comment {
			out = append(out, l)
		}
	}
	return out
}

func encodeLine(raw string) (Line, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Line{}, false
	}

	l := Line{Source: text}

	// Comment lines carry information only and are kept as they are.
	if strings.HasPrefix(text, ";") {
		l.Comment = true
		return l, true
	}

	// A label definition encodes as LABEL with the label as its operand.
	if label, ok := labelDefinition(text); ok {
		l.Mnemonic = "LABEL"
		l.Operands = label
		l.Opcode, l.Supported = Opcode(l.Mnemonic)
		return l, true
	}

	mnemonic, operands := splitInstruction(text)
	l.Mnemonic = mnemonic
	l.Operands = operands
	l.Opcode, l.Supported = Opcode(mnemonic)
	return l, true
}

// splitInstruction separates the mnemonic from the rest of the line.
func splitInstruction(text string) (mnemonic, operands string) {
	idx := strings.IndexAny(text, " \t")
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx+1:])
}

func labelDefinition(text string) (string, bool) {
	if !strings.HasSuffix(text, ":") {
		return "", false
	}
	name := strings.TrimSuffix(text, ":")
	if !isIdentifier(name) {
		return "", false
	}
	return name, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
