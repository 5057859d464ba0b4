// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package output serializes an assembled program as raw binary, a C64
// PRG, or Intel HEX, and writes the debug label listing.
package output

import (
	"bufio"
	"io"
	"iter"
	"log"
	"slices"

	"github.com/marcinbor85/gohex"

	"github.com/ezrec/sym6502/assembler"
	"github.com/ezrec/sym6502/internal"
)

// Format is an object file encoding.
type Format int

const (
	Binary   = Format(iota) // Object codes only.
	C64                     // Object codes after a $0801 load address.
	IntelHex                // Intel HEX data records.
)

// LabelsFile is the default name of the label listing.
const LabelsFile = "labels.txt"

// c64Header is the load address of a C64 BASIC PRG file.
var c64Header = []byte{0x01, 0x08}

// Writer writes the output files of an assembled program.
type Writer struct {
	FS      CreateFS // Where files are created, OS if nil.
	Format  Format   // Object file encoding.
	Labels  string   // Label listing name, none if empty.
	Verbose bool     // If set, logs each file written.
}

func (wr *Writer) create(name string) (file io.WriteCloser, err error) {
	filesys := wr.FS
	if filesys == nil {
		filesys = OS
	}
	file, err = filesys.Create(name)
	if err != nil {
		err = &ErrWrite{Name: name, Err: err}
	}
	return
}

// Write writes the object file, and the label listing if one is named.
func (wr *Writer) Write(name string, prog *assembler.Program) (err error) {
	err = wr.writeFile(name, func(w io.Writer) error {
		switch wr.Format {
		case C64:
			return WriteBinary(w, prog, true)
		case IntelHex:
			return WriteIntelHex(w, prog)
		default:
			return WriteBinary(w, prog, false)
		}
	})
	if err != nil {
		return
	}

	if len(wr.Labels) == 0 {
		return
	}

	err = wr.writeFile(wr.Labels, func(w io.Writer) error {
		return WriteLabels(w, prog.Labels)
	})

	return
}

func (wr *Writer) writeFile(name string, emit func(w io.Writer) error) (err error) {
	file, err := wr.create(name)
	if err != nil {
		return
	}

	bw := bufio.NewWriter(file)
	err = emit(bw)
	if err == nil {
		err = bw.Flush()
	}
	cerr := file.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		err = &ErrWrite{Name: name, Err: err}
		return
	}

	if wr.Verbose {
		log.Printf("wrote %v", name)
	}

	return
}

func values(prog *assembler.Program) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, code := range prog.Codes() {
			if !yield(code) {
				return
			}
		}
	}
}

// WriteBinary writes the object codes of a program, optionally preceded by
// the C64 PRG load address.
func WriteBinary(w io.Writer, prog *assembler.Program, c64 bool) (err error) {
	seq := values(prog)
	if c64 {
		seq = internal.IterSeqConcat(slices.Values(c64Header), seq)
	}

	_, err = w.Write(slices.Collect(seq))
	return
}

// hexRecordSize is the number of data bytes in each Intel HEX record.
const hexRecordSize = 40

// WriteIntelHex writes the object codes of a program as Intel HEX data
// records starting at the program origin, and an end of file record.
func WriteIntelHex(w io.Writer, prog *assembler.Program) (err error) {
	mem := gohex.NewMemory()

	codes := prog.Bytes()
	if len(codes) != 0 {
		err = mem.AddBinary(uint32(prog.Origin), codes)
		if err != nil {
			return
		}
	}

	err = mem.DumpIntelHex(w, hexRecordSize)
	return
}
