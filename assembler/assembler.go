// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package assembler

import (
	"fmt"
	"log"

	"github.com/ezrec/sym6502/decoder"
	"github.com/ezrec/sym6502/expr"
	"github.com/ezrec/sym6502/label"
	"github.com/ezrec/sym6502/macro"
	"github.com/ezrec/sym6502/opcode"
	"github.com/ezrec/sym6502/source"
)

// sizing is the pass 1 layout of a statement.
type sizing struct {
	pc     uint16 // Program counter at the statement.
	length int    // Bytes reserved for the statement.
}

// Assembler is a two pass 6502 assembler.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	labels     *label.Table
	pc         int
	addressSet bool
	origin     uint16
	originSet  bool
	sizes      [][]sizing
}

// Labels returns the label table of the last assembly.
func (asm *Assembler) Labels() *label.Table {
	return asm.labels
}

// Origin returns the first address set by a `*` pseudo command.
func (asm *Assembler) Origin() uint16 {
	return asm.origin
}

// Assemble expands the control constructs of the lines, and assembles them.
func (asm *Assembler) Assemble(lines []*source.Line) (prog *Program, err error) {
	ex := &macro.Expander{Verbose: asm.Verbose}
	lines, err = ex.Expand(lines)
	if err != nil {
		return
	}

	asm.labels = &label.Table{}
	asm.pc = 0
	asm.addressSet = false
	asm.origin = 0
	asm.originSet = false
	asm.sizes = make([][]sizing, len(lines))

	err = asm.pass1(lines)
	if err != nil {
		return
	}

	err = asm.pass2(lines)
	if err != nil {
		return
	}

	prog = &Program{
		Origin: asm.origin,
		Lines:  lines,
		Labels: asm.labels,
	}

	return
}

func wrap(line *source.Line, err error) error {
	return source.ErrSyntax{File: line.File, LineNo: line.LineNo, Line: line.Text, Err: err}
}

// isPseudo returns true for the origin, label def, data and fill commands.
func isPseudo(st source.Statement) bool {
	switch st.Command {
	case expr.SysOp("*"), expr.SysOp(":"), expr.SysOp("?"), expr.SysOp("$"):
		return true
	}
	return false
}

// pass1 assigns addresses to labels and sizes every statement.
func (asm *Assembler) pass1(lines []*source.Line) (err error) {
	for n, line := range lines {
		line.Address = uint16(asm.pc)

		var qualified string
		if len(line.Label) != 0 {
			qualified, err = asm.labels.Define(line.Label, line.LineNo, line.Address)
			if err != nil {
				return wrap(line, err)
			}
		}

		asm.sizes[n] = make([]sizing, len(line.Statements))
		for m, st := range line.Statements {
			size := &asm.sizes[n][m]
			size.pc = uint16(asm.pc)

			if isPseudo(st) {
				size.length, err = asm.pseudo1(qualified, st)
			} else if !asm.addressSet {
				err = ErrAddressNotSet
			} else {
				var in opcode.Instruction
				in, err = decoder.Decode(st, asm.labels)
				size.length = in.Length()
			}
			if err != nil {
				return wrap(line, err)
			}

			asm.pc += size.length
			if asm.pc > 0x10000 {
				return wrap(line, ErrAddressOverflow)
			}
		}
	}

	return
}

// pseudo1 runs a pseudo command in pass 1, returning its size.
func (asm *Assembler) pseudo1(qualified string, st source.Statement) (length int, err error) {
	switch st.Command {
	case expr.SysOp("*"):
		var pc uint16
		pc, err = expr.Evaluate(st.Expression, asm.labels, uint16(asm.pc))
		if err != nil {
			return
		}
		asm.pc = int(pc)
		asm.addressSet = true
		if !asm.originSet {
			asm.origin = pc
			asm.originSet = true
		}
	case expr.SysOp(":"):
		if len(qualified) == 0 {
			err = ErrLabelDefLabel
			return
		}
		var addr expr.Address
		addr, err = expr.CalculateAddress(st.Expression, asm.labels)
		if err != nil {
			return
		}
		err = asm.labels.Fix(qualified, addr)
	case expr.SysOp("?"):
		if !asm.addressSet {
			err = ErrAddressNotSet
			return
		}
		for _, item := range expr.TraverseComma(st.Expression) {
			var width int
			width, err = dataWidth(item)
			if err != nil {
				return
			}
			length += width
		}
	case expr.SysOp("$"):
		if !asm.addressSet {
			err = ErrAddressNotSet
			return
		}
		var width, count int
		_, width, count, err = asm.fill(st.Expression, uint16(asm.pc))
		length = width * count
	}

	return
}

// dataWidth is the size of a `?` data item.
func dataWidth(item expr.Expr) (width int, err error) {
	switch item := item.(type) {
	case expr.Decimal:
		if item > 0xff {
			err = &ErrByteRange{Expr: item.String(), Value: uint16(item)}
			return
		}
		width = 1
	case expr.Byte, expr.HiByte, expr.LoByte:
		width = 1
	case expr.Word, expr.Ident, expr.BinOp:
		width = 2
	case expr.String:
		width = len(item)
	default:
		err = ErrDataInvalid
	}
	return
}

// fill decodes `$=value,count`. Byte values repeat one byte, all other
// values a little-endian word.
func (asm *Assembler) fill(e expr.Expr, pc uint16) (value expr.Expr, width int, count int, err error) {
	bin, ok := e.(expr.BinOp)
	if !ok || bin.Op != expr.Comma {
		err = ErrFillInvalid
		return
	}

	value = bin.Left
	switch item := value.(type) {
	case expr.Byte, expr.HiByte, expr.LoByte:
		width = 1
	case expr.Decimal:
		width = 1
		if item > 0xff {
			width = 2
		}
	case expr.Word, expr.Ident, expr.BinOp:
		width = 2
	default:
		err = ErrFillInvalid
		return
	}

	repeat, err := expr.Evaluate(bin.Right, asm.labels, pc)
	if err != nil {
		return
	}
	count = int(repeat)

	return
}

// pass2 encodes every statement against the complete label table.
func (asm *Assembler) pass2(lines []*source.Line) (err error) {
	asm.labels.Reset()

	for n, line := range lines {
		asm.labels.Enter(line.Label)
		line.ObjectCodes = nil

		for m, st := range line.Statements {
			size := asm.sizes[n][m]

			var codes []byte
			if isPseudo(st) {
				codes, err = asm.pseudo2(st, size.pc)
			} else {
				codes, err = asm.encode(st, size)
			}
			if err == nil && len(codes) != size.length {
				err = ErrSizeChanged
			}
			if err != nil {
				return wrap(line, err)
			}

			line.ObjectCodes = append(line.ObjectCodes, codes...)
		}

		if asm.Verbose {
			log.Printf("%04X %-24v %v\n", line.Address, fmt.Sprintf("% X", line.ObjectCodes), line.Text)
		}
	}

	return
}

// pseudo2 emits the bytes of a pseudo command.
func (asm *Assembler) pseudo2(st source.Statement, pc uint16) (codes []byte, err error) {
	switch st.Command {
	case expr.SysOp("?"):
		for _, item := range expr.TraverseComma(st.Expression) {
			if str, ok := item.(expr.String); ok {
				codes = append(codes, string(str)...)
				continue
			}

			var width int
			width, err = dataWidth(item)
			if err != nil {
				return
			}

			var value uint16
			value, err = expr.Evaluate(item, asm.labels, pc)
			if err != nil {
				return
			}

			codes, err = appendValue(codes, item, value, width)
			if err != nil {
				return
			}
		}
	case expr.SysOp("$"):
		var item expr.Expr
		var width, count int
		item, width, count, err = asm.fill(st.Expression, pc)
		if err != nil {
			return
		}

		var value uint16
		value, err = expr.Evaluate(item, asm.labels, pc)
		if err != nil {
			return
		}

		for range count {
			codes, err = appendValue(codes, item, value, width)
			if err != nil {
				return
			}
		}
	}

	return
}

// appendValue appends value as a byte or a little-endian word.
func appendValue(codes []byte, e expr.Expr, value uint16, width int) ([]byte, error) {
	if width == 1 {
		if value > 0xff {
			return codes, &ErrByteRange{Expr: e.String(), Value: value}
		}
		return append(codes, byte(value)), nil
	}
	return append(codes, byte(value), byte(value>>8)), nil
}
