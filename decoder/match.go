package decoder

import (
	"errors"

	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/opcode"
)

// matcher decodes an operand into an instruction, or fails with errNoMatch.
type matcher func(e expr.Expr) (opcode.Instruction, error)

// resolver decodes an operand into an instruction value.
type resolver func(e expr.Expr) (opcode.Value, error)

// oneOf tries each matcher in order, and keeps the first success.
func oneOf(matchers ...matcher) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		for _, m := range matchers {
			in, err = m(e)
			if err == nil {
				return
			}
		}
		err = errNoMatch
		return
	}
}

// encode builds a matcher for one addressing mode of a mnemonic.
func encode(mnemonic opcode.Mnemonic, mode opcode.Mode, r resolver) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		value, err := r(e)
		if err != nil {
			return
		}
		in = opcode.Instruction{Mnemonic: mnemonic, Mode: mode, Value: value}
		return
	}
}

// symbol matches an operand spelled exactly as sym.
func symbol(sym expr.Expr, mnemonic opcode.Mnemonic, mode opcode.Mode) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		if e != sym {
			err = errNoMatch
			return
		}
		in = opcode.Instruction{Mnemonic: mnemonic, Mode: mode, Value: opcode.None{}}
		return
	}
}

// transfer matches a register to register copy.
func transfer(register string, mnemonic opcode.Mnemonic) matcher {
	return symbol(expr.Ident(register), mnemonic, opcode.Implied)
}

// binary matches `register op operand`, and decodes operand with m.
func binary(register string, op expr.Operator, m matcher) matcher {
	return func(e expr.Expr) (in opcode.Instruction, err error) {
		bin, ok := e.(expr.BinOp)
		if !ok || bin.Op != op || bin.Left != expr.Ident(register) {
			err = errNoMatch
			return
		}
		return m(bin.Right)
	}
}

// step matches the increment and decrement forms of an index register,
// `X=X+1` and `X=+`.
func step(register string, inc, dec opcode.Mnemonic) matcher {
	one := expr.Decimal(1)
	return oneOf(
		symbol(expr.SysOp("+"), inc, opcode.Implied),
		symbol(expr.SysOp("-"), dec, opcode.Implied),
		symbol(expr.Binary(expr.Ident(register), expr.Add, one), inc, opcode.Implied),
		symbol(expr.Binary(expr.Ident(register), expr.Sub, one), dec, opcode.Implied),
	)
}

// registers are the register names that may appear in operands.
var registers = map[expr.Ident]bool{
	"A":  true,
	"X":  true,
	"Y":  true,
	"AC": true,
}

func hasRegister(e expr.Expr) bool {
	switch e := e.(type) {
	case expr.Ident:
		return registers[e]
	case expr.Paren:
		return hasRegister(e.X)
	case expr.Bracket:
		return hasRegister(e.X)
	case expr.HiByte:
		return hasRegister(e.X)
	case expr.LoByte:
		return hasRegister(e.X)
	case expr.BinOp:
		return hasRegister(e.Left) || hasRegister(e.Right)
	}
	return false
}

// indexed splits `base+register` into base. Arithmetic groups to the right,
// so `label+1+X` is `label+(1+X)` and splits into `label+1`.
func indexed(e expr.Expr, register string) (base expr.Expr, ok bool) {
	bin, ok := e.(expr.BinOp)
	if !ok {
		return
	}
	if bin.Op == expr.Add && bin.Right == expr.Ident(register) {
		return bin.Left, true
	}
	right, ok := indexed(bin.Right, register)
	if !ok {
		return
	}
	return expr.Binary(bin.Left, bin.Op, right), true
}

// address resolves an address expression. An expression over labels not
// yet defined resolves to a deferred value instead.
func (d *decoder) address(e expr.Expr) (addr expr.Address, deferred opcode.Value, err error) {
	if hasRegister(e) {
		err = errNoMatch
		return
	}

	addr, err = expr.CalculateAddress(e, d.labels)
	if err == nil {
		return
	}

	if !errors.Is(err, expr.ErrUnresolved) {
		err = errNoMatch
		return
	}

	err = nil
	if id, ok := e.(expr.Ident); ok {
		deferred = opcode.UnresolvedLabel(id)
	} else {
		deferred = opcode.UnresolvedExpr{Expr: e}
	}
	return
}

// immediate resolves `$12`, `31`, a zero page label, or the high or low
// byte of a label.
func (d *decoder) immediate(e expr.Expr) (value opcode.Value, err error) {
	switch e.(type) {
	case expr.Paren, expr.Bracket:
		err = errNoMatch
		return
	}

	addr, deferred, err := d.address(e)
	if err != nil {
		return
	}

	switch e.(type) {
	case expr.HiByte, expr.LoByte:
		if deferred != nil {
			value = deferred
			return
		}
	default:
		if deferred != nil || !addr.IsZeroPage() {
			err = errNoMatch
			return
		}
	}

	value = opcode.Byte(addr.Byte())
	return
}

// zeroPage resolves a zero page address. Deferred labels are only taken
// when the mode has no absolute form to fall back to.
func (d *decoder) zeroPage(e expr.Expr, deferOk bool) (value opcode.Value, err error) {
	addr, deferred, err := d.address(e)
	switch {
	case err != nil:
	case deferred != nil:
		if !deferOk {
			err = errNoMatch
			return
		}
		value = deferred
	case !addr.IsZeroPage():
		err = errNoMatch
	default:
		value = opcode.Byte(addr.Byte())
	}
	return
}

// absolute resolves any address to a word.
func (d *decoder) absolute(e expr.Expr) (value opcode.Value, err error) {
	addr, deferred, err := d.address(e)
	switch {
	case err != nil:
	case deferred != nil:
		value = deferred
	default:
		value = opcode.Word(addr.Value)
	}
	return
}

func parenthesized(e expr.Expr) (inner expr.Expr, ok bool) {
	paren, ok := e.(expr.Paren)
	if ok {
		inner = paren.X
	}
	return
}

func bracketed(e expr.Expr) (inner expr.Expr, ok bool) {
	bracket, ok := e.(expr.Bracket)
	if ok {
		inner = bracket.X
	}
	return
}

// modeOrder is the order addressing modes are tried in. Immediate values are
// never taken for memory, and zero page is preferred to absolute.
var modeOrder = []opcode.Mode{
	opcode.Accumulator,
	opcode.Immediate,
	opcode.ZeroPage,
	opcode.ZeroPageX,
	opcode.ZeroPageY,
	opcode.Absolute,
	opcode.AbsoluteX,
	opcode.AbsoluteY,
	opcode.IndirectX,
	opcode.IndirectY,
}

// modes decodes an operand of mnemonic in each of its legal addressing modes.
func (d *decoder) modes(mnemonic opcode.Mnemonic) matcher {
	var matchers []matcher
	for _, mode := range modeOrder {
		if !opcode.Has(mnemonic, mode) {
			continue
		}
		matchers = append(matchers, d.mode(mnemonic, mode))
	}
	return oneOf(matchers...)
}

func (d *decoder) mode(mnemonic opcode.Mnemonic, mode opcode.Mode) matcher {
	if mode == opcode.Accumulator {
		return symbol(expr.Ident("A"), mnemonic, mode)
	}

	wide, ok := mode.Widen()
	deferOk := !ok || !opcode.Has(mnemonic, wide)

	var r resolver
	switch mode {
	case opcode.Immediate:
		r = d.immediate
	case opcode.ZeroPage:
		r = func(e expr.Expr) (opcode.Value, error) {
			inner, ok := parenthesized(e)
			if !ok {
				return nil, errNoMatch
			}
			return d.zeroPage(inner, deferOk)
		}
	case opcode.ZeroPageX, opcode.ZeroPageY:
		register := "X"
		if mode == opcode.ZeroPageY {
			register = "Y"
		}
		r = func(e expr.Expr) (opcode.Value, error) {
			inner, ok := parenthesized(e)
			if !ok {
				return nil, errNoMatch
			}
			base, ok := indexed(inner, register)
			if !ok {
				return nil, errNoMatch
			}
			return d.zeroPage(base, deferOk)
		}
	case opcode.Absolute:
		r = func(e expr.Expr) (opcode.Value, error) {
			inner, ok := parenthesized(e)
			if !ok {
				return nil, errNoMatch
			}
			return d.absolute(inner)
		}
	case opcode.AbsoluteX, opcode.AbsoluteY:
		register := "X"
		if mode == opcode.AbsoluteY {
			register = "Y"
		}
		r = func(e expr.Expr) (opcode.Value, error) {
			inner, ok := parenthesized(e)
			if !ok {
				return nil, errNoMatch
			}
			base, ok := indexed(inner, register)
			if !ok {
				return nil, errNoMatch
			}
			return d.absolute(base)
		}
	case opcode.IndirectX:
		// [ptr+X]
		r = func(e expr.Expr) (opcode.Value, error) {
			inner, ok := bracketed(e)
			if !ok {
				return nil, errNoMatch
			}
			base, ok := indexed(inner, "X")
			if !ok {
				return nil, errNoMatch
			}
			return d.zeroPage(base, true)
		}
	case opcode.IndirectY:
		// [ptr]+Y
		r = func(e expr.Expr) (opcode.Value, error) {
			base, ok := indexed(e, "Y")
			if !ok {
				return nil, errNoMatch
			}
			inner, ok := bracketed(base)
			if !ok {
				return nil, errNoMatch
			}
			return d.zeroPage(inner, true)
		}
	default:
		r = func(expr.Expr) (opcode.Value, error) {
			return nil, errNoMatch
		}
	}

	return encode(mnemonic, mode, r)
}
