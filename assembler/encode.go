package assembler

import (
	"github.com/ezrec/sym6502/decoder"
	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/opcode"
	"github.com/ezrec/sym6502/source"
)

// encode decodes a statement against the complete label table, and emits
// its object codes. A zero page form is widened to keep the pass 1 size.
func (asm *Assembler) encode(st source.Statement, size sizing) (codes []byte, err error) {
	in, err := decoder.Decode(st, asm.labels)
	if err != nil {
		return
	}

	if in.Length() < size.length {
		in, err = widen(in)
		if err != nil {
			return
		}
	}

	code, err := opcode.Lookup(in.Mnemonic, in.Mode)
	if err != nil {
		return
	}
	codes = append(codes, code)

	if in.Mode.Length() == 1 {
		return
	}

	value, err := asm.resolve(in.Value, size.pc)
	if err != nil {
		return
	}

	switch {
	case in.Mode == opcode.Relative:
		disp := int(value) - (int(size.pc) + 2)
		if disp < -128 || disp > 127 {
			err = &ErrBranchRange{Address: size.pc, Target: value}
			return
		}
		codes = append(codes, byte(int8(disp)))
	case in.Mode.Length() == 2:
		if value > 0xff {
			err = &ErrByteRange{Expr: st.Expression.String(), Value: value}
			return
		}
		codes = append(codes, byte(value))
	default:
		codes = append(codes, byte(value), byte(value>>8))
	}

	return
}

// widen moves an instruction to the absolute form of its zero page mode.
func widen(in opcode.Instruction) (wide opcode.Instruction, err error) {
	mode, ok := in.Mode.Widen()
	if !ok || !opcode.Has(in.Mnemonic, mode) {
		err = ErrSizeChanged
		return
	}

	wide = in
	wide.Mode = mode
	if b, ok := in.Value.(opcode.Byte); ok {
		wide.Value = opcode.Word(b)
	}
	return
}

// resolve returns the numeric operand of a decoded instruction.
func (asm *Assembler) resolve(value opcode.Value, pc uint16) (result uint16, err error) {
	switch v := value.(type) {
	case opcode.Byte:
		result = uint16(v)
	case opcode.Word:
		result = uint16(v)
	case opcode.UnresolvedRelative:
		result = uint16(v)
	case opcode.UnresolvedLabel:
		var addr expr.Address
		addr, err = asm.labels.Lookup(string(v))
		result = addr.Value
	case opcode.UnresolvedExpr:
		result, err = expr.Evaluate(v.Expr, asm.labels, pc)
	default:
		err = ErrDataInvalid
	}
	return
}
