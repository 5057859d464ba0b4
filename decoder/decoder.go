// Package decoder maps symbolic statements to 6502 instructions.
//
// Each command has an ordered list of alternative operand shapes. The
// first shape that matches decides the mnemonic and addressing mode, so
// `X=$12` is an immediate load and `X=($12)` a zero page load. Labels
// that are not yet defined do not fail the decode; they are carried in
// the instruction value to be resolved by the second assembler pass.
package decoder

import (
	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/opcode"
	"github.com/ezrec/sym6502/source"
)

type decoder struct {
	labels expr.Labels
}

// Decode resolves a statement into an instruction, looking up label
// references in labels.
func Decode(st source.Statement, labels expr.Labels) (in opcode.Instruction, err error) {
	d := &decoder{labels: labels}

	in, err = d.command(st.Command)(st.Expression)
	if err != nil {
		err = ErrDecode{Statement: st.String()}
	}

	return
}

// conditions maps a branch condition to its branch mnemonic.
var conditions = map[string]opcode.Mnemonic{
	`\`:  opcode.BNE,
	"/":  opcode.BNE,
	"!":  opcode.BNE,
	"NE": opcode.BNE,
	"=":  opcode.BEQ,
	"EQ": opcode.BEQ,
	"Z":  opcode.BEQ,
	">":  opcode.BCS,
	"CS": opcode.BCS,
	"GE": opcode.BCS,
	"<":  opcode.BCC,
	"CC": opcode.BCC,
	"LT": opcode.BCC,
	"-":  opcode.BMI,
	"MI": opcode.BMI,
	"+":  opcode.BPL,
	"PL": opcode.BPL,
	"_":  opcode.BVC,
	"VC": opcode.BVC,
	"^":  opcode.BVS,
	"VS": opcode.BVS,
}

// flags maps the flag statements to their instructions.
var flags = map[string]opcode.Mnemonic{
	"C=0": opcode.CLC,
	"C=1": opcode.SEC,
	"I=0": opcode.CLI,
	"I=1": opcode.SEI,
	"V=0": opcode.CLV,
	"D=0": opcode.CLD,
	"D=1": opcode.SED,
}

// shifts maps the shift and rotate operators to their mnemonics.
var shifts = map[expr.SysOp]opcode.Mnemonic{
	"<": opcode.ASL,
	">": opcode.LSR,
	"(": opcode.ROL,
	")": opcode.ROR,
}

func noMatch(expr.Expr) (in opcode.Instruction, err error) {
	err = errNoMatch
	return
}

// command returns the matcher for the operands of a command.
func (d *decoder) command(command expr.Expr) matcher {
	switch cmd := command.(type) {
	case expr.Ident:
		switch cmd {
		case "X":
			return oneOf(
				d.modes(opcode.LDX),
				step("X", opcode.INX, opcode.DEX),
				transfer("A", opcode.TAX),
				transfer("S", opcode.TSX),
			)
		case "Y":
			return oneOf(
				d.modes(opcode.LDY),
				step("Y", opcode.INY, opcode.DEY),
				transfer("A", opcode.TAY),
			)
		case "A":
			return oneOf(
				d.modes(opcode.LDA),
				transfer("X", opcode.TXA),
				transfer("Y", opcode.TYA),
				binary("AC", expr.Add, d.modes(opcode.ADC)),
				binary("AC", expr.Sub, d.modes(opcode.SBC)),
				binary("A", expr.Or, d.modes(opcode.ORA)),
				binary("A", expr.And, d.modes(opcode.AND)),
				binary("A", expr.Xor, d.modes(opcode.EOR)),
				symbol(expr.SysOp("]"), opcode.PLA, opcode.Implied),
				symbol(expr.SysOp("<"), opcode.ASL, opcode.Accumulator),
				symbol(expr.SysOp(">"), opcode.LSR, opcode.Accumulator),
				symbol(expr.SysOp("("), opcode.ROL, opcode.Accumulator),
				symbol(expr.SysOp(")"), opcode.ROR, opcode.Accumulator),
			)
		case "T":
			return oneOf(
				binary("A", expr.Sub, d.modes(opcode.CMP)),
				binary("X", expr.Sub, d.modes(opcode.CPX)),
				binary("Y", expr.Sub, d.modes(opcode.CPY)),
				binary("A", expr.And, d.modes(opcode.BIT)),
			)
		case "C", "I", "V", "D":
			return flag(string(cmd))
		case "S":
			return transfer("X", opcode.TXS)
		case "P":
			return symbol(expr.SysOp("]"), opcode.PLP, opcode.Implied)
		}
	case expr.SysOp:
		switch cmd {
		case "!":
			return encode(opcode.JSR, opcode.Absolute, d.target)
		case "#":
			return oneOf(
				symbol(expr.SysOp("!"), opcode.RTS, opcode.Implied),
				symbol(expr.SysOp("~"), opcode.RTI, opcode.Implied),
				encode(opcode.JMP, opcode.Indirect, d.indirect),
				encode(opcode.JMP, opcode.Absolute, d.target),
			)
		case ";":
			return d.branch
		case "[":
			return oneOf(
				transfer("A", opcode.PHA),
				transfer("P", opcode.PHP),
			)
		case "<", ">", "(", ")":
			return d.modes(shifts[cmd])
		}
	case expr.Paren, expr.Bracket, expr.BinOp:
		return d.store(command)
	}

	return noMatch
}

// flag matches `C=0`, `C=1` and the other flag forms.
func flag(name string) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		mnemonic, ok := flags[name+"="+e.String()]
		if _, isDecimal := e.(expr.Decimal); !ok || !isDecimal {
			err = errNoMatch
			return
		}
		in = opcode.Instruction{Mnemonic: mnemonic, Mode: opcode.Implied, Value: opcode.None{}}
		return
	}
}

// target resolves the address of a jump or call.
func (d *decoder) target(e expr.Expr) (value opcode.Value, err error) {
	switch e.(type) {
	case expr.Bracket, expr.SysOp:
		err = errNoMatch
		return
	}
	return d.absolute(e)
}

// indirect resolves the pointer of `#=[vector]`.
func (d *decoder) indirect(e expr.Expr) (value opcode.Value, err error) {
	inner, ok := bracketed(e)
	if !ok {
		err = errNoMatch
		return
	}
	return d.absolute(inner)
}

// branch matches `;=COND,target`.
func (d *decoder) branch(e expr.Expr) (in opcode.Instruction, err error) {
	bin, ok := e.(expr.BinOp)
	if !ok || bin.Op != expr.Comma {
		err = errNoMatch
		return
	}

	var mnemonic opcode.Mnemonic
	switch cond := bin.Left.(type) {
	case expr.SysOp, expr.Ident:
		mnemonic, ok = conditions[cond.String()]
	default:
		ok = false
	}
	if !ok {
		err = errNoMatch
		return
	}

	var value opcode.Value
	switch target := bin.Right.(type) {
	case expr.Decimal:
		value = opcode.UnresolvedRelative(target)
	case expr.Byte:
		value = opcode.UnresolvedRelative(target)
	case expr.Word:
		value = opcode.UnresolvedRelative(target)
	case expr.Ident:
		if registers[target] {
			err = errNoMatch
			return
		}
		value = opcode.UnresolvedLabel(target)
	default:
		if hasRegister(target) {
			err = errNoMatch
			return
		}
		value = opcode.UnresolvedExpr{Expr: target}
	}

	in = opcode.Instruction{Mnemonic: mnemonic, Mode: opcode.Relative, Value: value}
	return
}

// store matches the operands of a memory target: a register to store, or
// an increment, decrement, shift or rotate of the memory.
func (d *decoder) store(target expr.Expr) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		var mnemonic opcode.Mnemonic
		switch e {
		case expr.Ident("A"):
			mnemonic = opcode.STA
		case expr.Ident("X"):
			mnemonic = opcode.STX
		case expr.Ident("Y"):
			mnemonic = opcode.STY
		case expr.SysOp("+"):
			mnemonic = opcode.INC
		case expr.SysOp("-"):
			mnemonic = opcode.DEC
		default:
			op, ok := e.(expr.SysOp)
			if !ok {
				err = errNoMatch
				return
			}
			mnemonic, ok = shifts[op]
			if !ok {
				err = errNoMatch
				return
			}
		}
		return d.modes(mnemonic)(target)
	}
}
