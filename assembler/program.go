package assembler

import (
	"iter"

	"github.com/ezrec/sym6502/internal"
	"github.com/ezrec/sym6502/label"
	"github.com/ezrec/sym6502/source"
)

// Program is an assembled source.
type Program struct {
	Origin uint16         // Address of the first object code.
	Lines  []*source.Line // Expanded lines, with their object codes.
	Labels *label.Table   // Labels, with their final addresses.
}

// Debug locates the line holding an address.
type Debug struct {
	*source.Line
	Index int // Offset of the address within the line's object codes.
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for _, line := range prog.Lines {
		if addr >= line.Address && int(addr) < int(line.Address)+len(line.ObjectCodes) {
			dbg = Debug{
				Line:  line,
				Index: int(addr - line.Address),
			}
			break
		}
	}

	return
}

// Size is the number of object code bytes.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size += len(line.ObjectCodes)
	}
	return
}

// Bytes returns the object codes of all lines, in source order.
func (prog *Program) Bytes() (codes []byte) {
	codes = make([]byte, 0, prog.Size())
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}
	return
}

// Codes iterates over the address and value of every object code.
func (prog *Program) Codes() iter.Seq2[uint16, byte] {
	seqs := make([]iter.Seq2[uint16, byte], 0, len(prog.Lines))
	for _, line := range prog.Lines {
		if len(line.ObjectCodes) == 0 {
			continue
		}
		seqs = append(seqs, lineCodes(line))
	}
	return internal.IterSeq2Concat(seqs...)
}

func lineCodes(line *source.Line) iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, code byte) bool) {
		for n, code := range line.ObjectCodes {
			if !yield(line.Address+uint16(n), code) {
				return
			}
		}
	}
}
