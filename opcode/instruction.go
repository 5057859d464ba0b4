package opcode

import (
	"fmt"

	"github.com/ezrec/sym6502/expr"
)

// Value is the operand of a decoded instruction. Its concrete type selects
// how many operand bytes follow the opcode, and how they are computed.
type Value interface {
	value()
}

type (
	// None is the operand of implied and accumulator instructions.
	None struct{}

	// Byte is a one byte operand.
	Byte uint8

	// Word is a two byte little-endian operand.
	Word uint16

	// UnresolvedLabel is a label reference resolved in pass 2.
	UnresolvedLabel string

	// UnresolvedRelative is a literal branch target, converted to a
	// displacement once the branch address is known.
	UnresolvedRelative uint16

	// UnresolvedExpr is an address expression over labels that were not
	// yet defined when the instruction was decoded.
	UnresolvedExpr struct{ Expr expr.Expr }
)

func (None) value()               {}
func (Byte) value()               {}
func (Word) value()               {}
func (UnresolvedLabel) value()    {}
func (UnresolvedRelative) value() {}
func (UnresolvedExpr) value()     {}

// Instruction is a decoded statement: a mnemonic in an addressing mode,
// with its operand.
type Instruction struct {
	Mnemonic Mnemonic
	Mode     Mode
	Value    Value
}

// Length is the encoded size of the instruction.
func (in Instruction) Length() int {
	return in.Mode.Length()
}

func (in Instruction) String() string {
	switch v := in.Value.(type) {
	case Byte:
		return fmt.Sprintf("%v %v $%02X", in.Mnemonic, in.Mode, uint8(v))
	case Word:
		return fmt.Sprintf("%v %v $%04X", in.Mnemonic, in.Mode, uint16(v))
	case UnresolvedLabel:
		return fmt.Sprintf("%v %v %v", in.Mnemonic, in.Mode, string(v))
	case UnresolvedRelative:
		return fmt.Sprintf("%v %v $%04X", in.Mnemonic, in.Mode, uint16(v))
	case UnresolvedExpr:
		return fmt.Sprintf("%v %v %v", in.Mnemonic, in.Mode, v.Expr)
	}
	return fmt.Sprintf("%v %v", in.Mnemonic, in.Mode)
}
