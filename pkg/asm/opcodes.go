package asm

import "strings"

// opcodes maps an intermediate mnemonic to its symbolic opcode bit pattern.
var opcodes = map[string]string{
	// Arithmetic
	"ADD":   "000000",
	"SUB":   "001010",
	"IMUL":  "0000111110101111",
	"IDIV":  "11110111",
	"POWER": "11110110",

	// Assignment
	"MOV": "100010",

	// Comparison / conditional jumps
	"CMP": "001110",
	"JE":  "01110100",
	"JNE": "01110101",
	"JL":  "01111100",
	"JLE": "01111110",
	"JG":  "01111111",
	"JGE": "01111101",

	// Logical
	"AND": "001000",
	"OR":  "000010",
	"NOT": "1111011",

	// Control flow
	"JMP":   "11101011",
	"LABEL": "00000000",

	// Procedures
	"PROC": "00000000",
	"ENDP": "00000000",
	"CALL": "11101000",
	"RET":  "11000011",
}

// Opcode returns the bit pattern for mnemonic, ignoring case.
func Opcode(mnemonic string) (string, bool) {
	bits, ok := opcodes[strings.ToUpper(mnemonic)]
	return bits, ok
}
