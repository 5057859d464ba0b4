// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a binary operator joining two expressions.
type Operator int

const (
	Add      = Operator(iota) // +
	Sub                       // -
	Mul                       // *
	Div                       // /
	And                       // &
	Or                        // |
	Xor                       // ^
	Comma                     // ,
	Greater                   // >
	Less                      // <
	Equal                     // =
	NotEqual                  // \
)

var operatorText = [...]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	And:      "&",
	Or:       "|",
	Xor:      "^",
	Comma:    ",",
	Greater:  ">",
	Less:     "<",
	Equal:    "=",
	NotEqual: "\\",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorText) {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorText[op]
}

// IsComparison returns true for the boolean operators used by conditions.
func (op Operator) IsComparison() bool {
	switch op {
	case Greater, Less, Equal, NotEqual:
		return true
	}
	return false
}

// Expr is an operand expression. The concrete types below are the only
// implementations; consumers type-switch over them.
type Expr interface {
	fmt.Stringer
	expr()
}

type (
	// Empty is the operand of a bare command such as `@`.
	Empty struct{}

	// Decimal is a decimal literal, `31`.
	Decimal uint16

	// Byte is a one or two digit hex literal, `$1F`.
	Byte uint8

	// Word is a three or four digit hex literal, `$C000`.
	Word uint16

	// String is a quoted string literal.
	String string

	// Ident is a label or register name.
	Ident string

	// HiByte is the high byte of a label address, `>label`.
	HiByte struct{ X Expr }

	// LoByte is the low byte of a label address, `<label`.
	LoByte struct{ X Expr }

	// Paren dereferences X as an address, `(label)`.
	Paren struct{ X Expr }

	// Bracket dereferences X through a zero page pointer, `[ptr]`.
	Bracket struct{ X Expr }

	// SysOp is a run of a system operator character, `+`, `++`, `!`.
	SysOp string

	// BinOp joins two expressions.
	BinOp struct {
		Left  Expr
		Op    Operator
		Right Expr
	}
)

func (Empty) expr()   {}
func (Decimal) expr() {}
func (Byte) expr()    {}
func (Word) expr()    {}
func (String) expr()  {}
func (Ident) expr()   {}
func (HiByte) expr()  {}
func (LoByte) expr()  {}
func (Paren) expr()   {}
func (Bracket) expr() {}
func (SysOp) expr()   {}
func (BinOp) expr()   {}

func (Empty) String() string     { return "" }
func (e Decimal) String() string { return strconv.Itoa(int(e)) }
func (e Byte) String() string    { return fmt.Sprintf("$%02X", uint8(e)) }
func (e Word) String() string    { return fmt.Sprintf("$%04X", uint16(e)) }
func (e Ident) String() string   { return string(e) }
func (e HiByte) String() string  { return ">" + e.X.String() }
func (e LoByte) String() string  { return "<" + e.X.String() }
func (e Paren) String() string   { return "(" + e.X.String() + ")" }
func (e Bracket) String() string { return "[" + e.X.String() + "]" }
func (e SysOp) String() string   { return string(e) }

func (e String) String() string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(string(e)) + `"`
}

func (e BinOp) String() string {
	return e.Left.String() + e.Op.String() + e.Right.String()
}

// Binary builds a BinOp.
func Binary(left Expr, op Operator, right Expr) BinOp {
	return BinOp{Left: left, Op: op, Right: right}
}

// TraverseComma flattens a right-leaning comma chain into its elements.
// Any other expression is returned as a single element list.
func TraverseComma(e Expr) (list []Expr) {
	for {
		bin, ok := e.(BinOp)
		if !ok || bin.Op != Comma {
			list = append(list, e)
			return
		}
		list = append(list, bin.Left)
		e = bin.Right
	}
}

// IsEmpty returns true if the expression is Empty or nil.
func IsEmpty(e Expr) bool {
	if e == nil {
		return true
	}
	_, ok := e.(Empty)
	return ok
}
