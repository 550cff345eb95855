// Package compiler turns a one-line statement into symbolic machine code.
//
// Pipeline: source → Lex → Parse → Generate → asm.Encode
//
// Lex classifies words and symbols against fixed catalogs. Parse matches the
// token kinds against a small statement catalog and builds an expression tree
// for assignments by precedence climbing. Generate lowers the tree into
// MASM-like three-address lines using fresh temporaries and labels, and
// asm.Encode maps each mnemonic to an opcode bit pattern.
package compiler
