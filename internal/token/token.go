// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the calculator's command vocabulary.
package token

// Kind identifies what a single input token does.
type Kind int

const (
	BLANK Kind = iota
	LITERAL

	// Arithmetic
	ADD  // +
	SUB  // -
	MUL  // *
	DIV  // /
	NEG  // +-
	SQRT // sqrt

	// Stack manipulation
	CLEAR // clear
	DROP  // drop
	DUP   // dup
	SWAP  // swap
	OVER  // over

	// Variables (x is a letter a-z, either case)
	STORE_VAR // >x - pop top into x
	LOAD_VAR  // <x - push x
	ADD_VAR   // +x - pop top, add to x
	SUB_VAR   // -x - pop top, subtract from x
	BACKUP    // save
	RESTORE   // restore

	// Transcendental
	MOD  // mod
	ARG  // arg
	POW  // pow
	EXP  // exp
	LOG  // log
	SIN  // sin
	COS  // cos
	TAN  // tan
	ASIN // asin
	ACOS // acos
	ATAN // atan

	// MACRO names a user-defined operation, resolved when executed.
	MACRO
)

// Prefix runes of the variable commands.
const (
	RuneStoreVar = '>'
	RuneLoadVar  = '<'
	RuneAddVar   = '+'
	RuneSubVar   = '-'
)

var words = map[string]Kind{
	"+":       ADD,
	"-":       SUB,
	"*":       MUL,
	"/":       DIV,
	"+-":      NEG,
	"sqrt":    SQRT,
	"clear":   CLEAR,
	"drop":    DROP,
	"dup":     DUP,
	"swap":    SWAP,
	"over":    OVER,
	"save":    BACKUP,
	"restore": RESTORE,
	"mod":     MOD,
	"arg":     ARG,
	"pow":     POW,
	"exp":     EXP,
	"log":     LOG,
	"sin":     SIN,
	"cos":     COS,
	"tan":     TAN,
	"asin":    ASIN,
	"acos":    ACOS,
	"atan":    ATAN,
}

// Lookup returns the kind of a fixed vocabulary word.
func Lookup(word string) (Kind, bool) {
	k, ok := words[word]
	return k, ok
}

// Words returns the fixed vocabulary in Kind order.
func Words() []string {
	out := make([]string, 0, len(words))
	for k := ADD; k < MACRO; k++ {
		for w, wk := range words {
			if wk == k {
				out = append(out, w)
			}
		}
	}
	return out
}

// VariableCommand recognizes the two-character variable forms (>x, <x, +x,
// -x) and returns the command kind and the lower-cased variable letter.
func VariableCommand(s string) (Kind, byte, bool) {
	if len(s) != 2 {
		return BLANK, 0, false
	}
	c := s[1]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return BLANK, 0, false
	}
	switch s[0] {
	case RuneStoreVar:
		return STORE_VAR, c, true
	case RuneLoadVar:
		return LOAD_VAR, c, true
	case RuneAddVar:
		return ADD_VAR, c, true
	case RuneSubVar:
		return SUB_VAR, c, true
	}
	return BLANK, 0, false
}

// IsReserved reports whether s is a vocabulary word or a variable command
// and so cannot name a macro.
func IsReserved(s string) bool {
	if _, ok := words[s]; ok {
		return true
	}
	_, _, ok := VariableCommand(s)
	return ok
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case BLANK:
		return "BLANK"
	case LITERAL:
		return "LITERAL"
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case MUL:
		return "MUL"
	case DIV:
		return "DIV"
	case NEG:
		return "NEG"
	case SQRT:
		return "SQRT"
	case CLEAR:
		return "CLEAR"
	case DROP:
		return "DROP"
	case DUP:
		return "DUP"
	case SWAP:
		return "SWAP"
	case OVER:
		return "OVER"
	case STORE_VAR:
		return "STORE_VAR"
	case LOAD_VAR:
		return "LOAD_VAR"
	case ADD_VAR:
		return "ADD_VAR"
	case SUB_VAR:
		return "SUB_VAR"
	case BACKUP:
		return "BACKUP"
	case RESTORE:
		return "RESTORE"
	case MOD:
		return "MOD"
	case ARG:
		return "ARG"
	case POW:
		return "POW"
	case EXP:
		return "EXP"
	case LOG:
		return "LOG"
	case SIN:
		return "SIN"
	case COS:
		return "COS"
	case TAN:
		return "TAN"
	case ASIN:
		return "ASIN"
	case ACOS:
		return "ACOS"
	case ATAN:
		return "ATAN"
	case MACRO:
		return "MACRO"
	}
	return "UNKNOWN"
}

// Operands returns how many stack entries must be present before the
// command runs.
func (k Kind) Operands() int {
	switch k {
	case ADD, SUB, MUL, DIV, POW, DUP, SWAP, OVER:
		return 2
	case NEG, SQRT, DROP, STORE_VAR, ADD_VAR, SUB_VAR,
		MOD, ARG, EXP, LOG, SIN, COS, TAN, ASIN, ACOS, ATAN:
		return 1
	}
	return 0
}

// IsPrimitive returns true if the kind acts directly on the stack or the
// variables rather than through a macro.
func (k Kind) IsPrimitive() bool {
	return k > LITERAL && k < MACRO
}
